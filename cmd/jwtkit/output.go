package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/cybergodev/jwtkit"
)

var dateClaims = map[string]bool{
	jwtkit.ClaimExpiresAt: true,
	jwtkit.ClaimNotBefore: true,
	jwtkit.ClaimIssuedAt:  true,
}

func renderClaims(w io.Writer, claims jwtkit.Claims) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Claim", "Value"})

	bold := color.New(color.Bold).SprintFunc()
	for _, name := range claims.Names() {
		t.AppendRow(table.Row{bold(name), formatClaim(name, claims.Get(name))})
	}

	s := table.StyleRounded
	s.Format.Header = text.FormatDefault
	t.SetStyle(s)
	t.Render()
}

func formatClaim(name string, claim jwtkit.Claim) string {
	if claim.IsNull() {
		return color.New(color.Faint).Sprint("null")
	}
	if dateClaims[name] {
		if date, err := claim.AsDate(); err == nil {
			faint := color.New(color.Faint).SprintfFunc()
			return fmt.Sprintf("%d %s", date.Unix(), faint("(%s)", date.Format(time.RFC3339)))
		}
	}
	if s, err := claim.AsString(); err == nil {
		return s
	}
	raw, err := json.Marshal(claim.Raw())
	if err != nil {
		return fmt.Sprint(claim.Raw())
	}
	return string(raw)
}
