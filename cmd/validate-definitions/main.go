package main

import (
	"fmt"
	"os"

	"github.com/Caelestis94/telehook/definitions"
	"github.com/Caelestis94/telehook/render"
	"github.com/Caelestis94/telehook/webhook/payload"
)

/* validate-definitions - Standalone CLI tool to validate webhooks.yaml
 * Usage: go run cmd/validate-definitions/main.go [webhooks.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	definitionsFile := "webhooks.yaml"
	if len(os.Args) > 1 {
		definitionsFile = os.Args[1]
	}

	fmt.Printf("Validating definitions file: %s\n\n", definitionsFile)

	data, err := os.ReadFile(definitionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "VALIDATION FAILED\n\nError: %v\n", err)
		os.Exit(1)
	}

	doc, err := definitions.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "VALIDATION FAILED\n\nError: %v\n", err)
		os.Exit(1)
	}

	// dry-run every template against its sample payload
	engine := render.NewEngine()
	failures := 0
	for _, wh := range doc.Webhooks {
		if wh.PayloadSample == "" {
			continue
		}

		sample, err := payload.Parse([]byte(wh.PayloadSample))
		if err != nil {
			fmt.Fprintf(os.Stderr, "webhook %q: invalid payload_sample: %v\n", wh.PublicID, err)
			failures++
			continue
		}
		if _, err := engine.Render(wh.MessageTemplate, sample); err != nil {
			fmt.Fprintf(os.Stderr, "webhook %q: template does not render against payload_sample: %v\n", wh.PublicID, err)
			failures++
		}
	}
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "\nVALIDATION FAILED: %d webhook(s) with template problems\n", failures)
		os.Exit(1)
	}

	fmt.Printf("VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d bot(s) and %d webhook(s):\n", len(doc.Bots), len(doc.Webhooks))

	for i, wh := range doc.Webhooks {
		mode := wh.ParseMode
		if mode == "" {
			mode = "MarkdownV2"
		}
		fmt.Printf("\n%d. Webhook: %s (%s)\n", i+1, wh.Name, wh.PublicID)
		fmt.Printf("   Bot ID:     %d\n", wh.BotID)
		fmt.Printf("   Parse Mode: %s\n", mode)
		fmt.Printf("   Protected:  %t\n", wh.IsProtected)
		fmt.Printf("   Disabled:   %t\n", wh.IsDisabled)
	}

	fmt.Printf("\nAll definitions are valid.\n")
	os.Exit(0)
}
