// Seeds a vault with demo notes for trying out search and chat.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hyphal/mycelia/vault"
)

type seedNote struct {
	folder   string
	filename string
	content  string
}

var seedNotes = []seedNote{
	{
		folder:   "topics",
		filename: "niche-markets.md",
		content: `---
title: "Niche Markets"
tags: [business, strategy]
date: 2026-02-10
---

Underserved trades often have terrible software and will pay well for
something that actually works. Related: [[B2B SaaS]], [[farriers]].`,
	},
	{
		folder:   "topics",
		filename: "fermentation.md",
		content: `---
title: "Fermentation"
tags: [cooking, hobby]
date: 2026-01-22
---

Started a sourdough culture and a batch of kimchi. The starter doubles
in about six hours at room temperature.`,
	},
	{
		folder:   "people",
		filename: "dana-reyes.md",
		content: `---
title: "Dana Reyes"
tags: [colleague]
date: 2026-02-02
---

Dana runs the farrier supply shop downtown. Interested in beta testing
scheduling software for [[farriers]].`,
	},
	{
		folder:   "projects",
		filename: "horseshoe-crm.md",
		content: `---
title: "Horseshoe CRM"
tags: [software, farriers]
date: 2026-02-15
---

Working title for the [[farriers]] scheduling and invoicing tool.
Talking to [[Dana Reyes]] about a pilot.`,
	},
	{
		folder:   "decisions",
		filename: "local-first-storage.md",
		content: `---
title: "Local First Storage"
tags: [architecture]
date: 2026-02-12
---

Decided to keep all data local in plain markdown. No cloud sync until
the core loop feels right.`,
	},
	{
		folder:   "ideas",
		filename: "route-optimizer.md",
		content: `---
title: "Route Optimizer"
tags: [software, what-if]
date: 2026-02-17
---

What if the CRM suggested visit routes? Farriers drive between farms
all day; even naive ordering would save fuel.`,
	},
}

func main() {
	root := flag.String("vault", "", "path to the vault to seed")
	journalFormat := flag.String("journal-format", vault.DefaultJournalFormat, "journal filename format id")
	flag.Parse()

	if *root == "" {
		log.Fatal("-vault is required")
	}

	v, err := vault.New(*root)
	if err != nil {
		log.Fatal(err)
	}
	if err := v.EnsureStructure(); err != nil {
		log.Fatal(err)
	}

	for _, note := range seedNotes {
		if _, err := v.WriteNote(note.folder, note.filename, note.content); err != nil {
			log.Fatalf("writing %s/%s: %v", note.folder, note.filename, err)
		}
	}

	// Today's journal, so context assembly has something to pin.
	today := time.Now().UTC()
	journal := fmt.Sprintf("## %s\n\nSeeded the vault with demo notes. Plan: demo search, then chat.\n",
		today.Format("2006-01-02"))
	stem := vault.FormatJournalDate(today, *journalFormat)
	if _, err := v.WriteNote("journals", stem+".md", journal); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Seeded %d notes and today's journal into %s\n", len(seedNotes)+1, v.Root())
}
