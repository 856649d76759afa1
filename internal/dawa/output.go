package dawa

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// WriteNDJSON streams every raw mini address as one JSON document per
// line.
func (c *Client) WriteNDJSON(w io.Writer, kommunekode string) error {
	return c.StreamAddresses(kommunekode, func(raw json.RawMessage) error {
		if _, err := fmt.Fprintf(w, "%s\n", raw); err != nil {
			return fmt.Errorf("failed to write address line: %w", err)
		}
		return nil
	})
}

// WriteBetegnelser writes the human-readable address designation, one
// per line.
func (c *Client) WriteBetegnelser(w io.Writer, kommunekode string) error {
	return c.StreamAddresses(kommunekode, func(raw json.RawMessage) error {
		var addr Address
		if err := json.Unmarshal(raw, &addr); err != nil {
			return fmt.Errorf("failed to decode address: %w", err)
		}
		if _, err := fmt.Fprintln(w, addr.Betegnelse); err != nil {
			return fmt.Errorf("failed to write address line: %w", err)
		}
		return nil
	})
}

// WriteStreetCounts writes the number of addresses per street name,
// tab-separated, sorted by street name with Danish collation (æ, ø and
// å sort after z, which plain byte comparison gets wrong).
func (c *Client) WriteStreetCounts(w io.Writer, kommunekode string) error {
	counts := make(map[string]int)

	err := c.StreamAddresses(kommunekode, func(raw json.RawMessage) error {
		var addr Address
		if err := json.Unmarshal(raw, &addr); err != nil {
			return fmt.Errorf("failed to decode address: %w", err)
		}
		counts[addr.Vejnavn]++
		return nil
	})
	if err != nil {
		return err
	}

	streets := make([]string, 0, len(counts))
	for street := range counts {
		streets = append(streets, street)
	}
	collate.New(language.Danish).SortStrings(streets)

	for _, street := range streets {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", street, counts[street]); err != nil {
			return fmt.Errorf("failed to write street count: %w", err)
		}
	}
	return nil
}
