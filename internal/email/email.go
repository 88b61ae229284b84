// Package email builds the mailto handoff for a generated weekly
// report. It only composes the link; opening it is the platform mail
// client's job and no network call is ever made here.
package email

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrNoRecipient means no destination address was configured.
	ErrNoRecipient = errors.New("no recipient address")
	// ErrNoReport means no report text has been generated yet.
	ErrNoReport = errors.New("no report to send")
)

// Compose validates the preconditions and returns a mailto: URL whose
// subject names the employee and period and whose body is the report
// text.
func Compose(recipient, employee, start, end, body string) (string, error) {
	if strings.TrimSpace(recipient) == "" {
		return "", ErrNoRecipient
	}
	if strings.TrimSpace(body) == "" {
		return "", ErrNoReport
	}

	subject := fmt.Sprintf("Timesheet %s — %s to %s", employee, start, end)
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)

	// mailto bodies use percent-encoding for spaces, not "+".
	query := strings.ReplaceAll(q.Encode(), "+", "%20")
	return "mailto:" + recipient + "?" + query, nil
}
