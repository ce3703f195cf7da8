// Package ingest turns raw email messages into the weighted edge list the
// analysis pipeline consumes: header parsing, sender/recipient pair
// extraction, aggregation into weighted edges, and a CSV cache of the
// cleaned pair list so large corpora are parsed only once.
package ingest

import (
	"fmt"
	"net/mail"
	"strings"
)

// Pair is one raw sender -> recipient connection extracted from a message.
// A message with three recipients yields three pairs.
type Pair struct {
	From string
	To   string
}

// ParseMessage extracts the sender and the combined To/Cc/Bcc recipient list
// from a raw RFC 2822 message. Recipient fields are split on commas and
// blank entries dropped; addresses are kept verbatim beyond whitespace
// trimming so node identities match the corpus casing.
func ParseMessage(raw string) (sender string, recipients []string, err error) {
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		return "", nil, fmt.Errorf("read message headers: %w", err)
	}

	sender = strings.TrimSpace(msg.Header.Get("From"))

	combined := msg.Header.Get("To") + "," + msg.Header.Get("Cc") + "," + msg.Header.Get("Bcc")
	for _, r := range strings.Split(combined, ",") {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}

	return sender, recipients, nil
}

// PairsFromMessage parses a raw message and expands it into one Pair per
// recipient. Messages without a sender or without recipients yield no pairs.
func PairsFromMessage(raw string) ([]Pair, error) {
	sender, recipients, err := ParseMessage(raw)
	if err != nil {
		return nil, err
	}
	if sender == "" || len(recipients) == 0 {
		return nil, nil
	}

	pairs := make([]Pair, 0, len(recipients))
	for _, r := range recipients {
		pairs = append(pairs, Pair{From: sender, To: r})
	}
	return pairs, nil
}
