package lookupcli

import (
	"fmt"
	"io"

	"github.com/okian/wcarank/internal/domain/types"
)

// NotFoundMessage is printed when no record matches.
const NotFoundMessage = "No person found with the specified criteria."

// PrintProfile writes the rank info block for p.
func PrintProfile(w io.Writer, p types.Profile) error {
	_, err := fmt.Fprintf(w, "Rank Info for %s\nName: %s\nEvent: %s\nCountry: %s\nRank: %s\nBest Result: %s\n",
		p.Name, p.Name, p.Event, p.Country, p.Rank, p.BestResult)
	return err
}

// PrintNotFound writes NotFoundMessage.
func PrintNotFound(w io.Writer) error {
	_, err := fmt.Fprintln(w, NotFoundMessage)
	return err
}

// PrintEvents writes one "id<TAB>name" line per event.
func PrintEvents(w io.Writer, events []types.EventOption) error {
	for _, e := range events {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.ID, e.Name); err != nil {
			return err
		}
	}
	return nil
}
