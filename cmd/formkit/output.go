package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/messages"
)

var errInvalid = errors.New("form is invalid")

func printSummary(w io.Writer, s messages.Summary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "status: %s\n", s.Status)
		for _, m := range s.Messages {
			fmt.Fprintf(w, "error: %s\n", m)
		}
		for _, m := range s.Warnings {
			fmt.Fprintf(w, "warning: %s\n", m)
		}
		paths := make([]string, 0, len(s.Errors))
		for p := range s.Errors {
			paths = append(paths, p)
		}
		slices.Sort(paths)
		for _, p := range paths {
			fmt.Fprintf(w, "  %s: %s\n", p, strings.Join(s.Errors[p], ", "))
		}
	}
	if !s.Valid {
		return errInvalid
	}
	return nil
}
