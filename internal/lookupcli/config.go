package lookupcli

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ErrUsage reports missing or conflicting flags.
var ErrUsage = errors.New("usage")

// Config holds the options of one lookup.
type Config struct {
	ResultsSource string        // results export: path or URL
	RanksSource   string        // ranks export: path or URL
	ServerURL     string        // when set, ask a running server instead of loading exports
	Event         string        // WCA event id
	Region        string        // country id
	Rank          string        // rank number or "lowest"
	Timeout       time.Duration // fetch timeout
	ListEvents    bool          // print the events and exit
	Verbose       bool          // enable debug logging
}

// Validate checks that enough was given to run.
func (c *Config) Validate() error {
	if c.ServerURL == "" && (c.ResultsSource == "" || c.RanksSource == "") {
		return errors.Join(ErrUsage, errors.New("--results and --ranks are required without --url"))
	}
	if c.ListEvents {
		return nil
	}
	flags := []lo.Tuple2[string, string]{
		lo.T2("--event", c.Event),
		lo.T2("--region", c.Region),
		lo.T2("--rank", c.Rank),
	}
	missing := lo.FilterMap(flags, func(f lo.Tuple2[string, string], _ int) (string, bool) {
		return f.A, strings.TrimSpace(f.B) == ""
	})
	if len(missing) > 0 {
		return errors.Join(ErrUsage, errors.New("missing "+strings.Join(missing, ", ")))
	}
	return nil
}
