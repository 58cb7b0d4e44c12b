package ingestion

import (
	"strings"
	"time"
)

// Perspective controls the voice extracted notes are written in.
type Perspective string

const (
	// PerspectiveSecond addresses the user directly ("You decided...").
	PerspectiveSecond Perspective = "second"
	// PerspectiveFirst writes as the user ("I decided...").
	PerspectiveFirst Perspective = "first"
	// PerspectivePlural writes as the user and assistant together ("We decided...").
	PerspectivePlural Perspective = "plural"
)

type perspectiveInstruction struct {
	rule    string
	example string
}

var perspectiveInstructions = map[Perspective]perspectiveInstruction{
	PerspectiveSecond: {
		rule: `Write in second person ("You mentioned...", "You decided...", "You're interested in...")`,
		example: "You're considering building software for [[farriers]] (horseshoe makers). This connects to your broader interest in " +
			"[[niche markets]] and [[B2B SaaS]]. The insight is that underserved trades often have terrible software and will pay well for something that actually works.",
	},
	PerspectiveFirst: {
		rule: `Write in first person from the USER's perspective — "I" means the user, never the AI ("I mentioned...", "I decided...", "I'm interested in...")`,
		example: "I'm considering building software for [[farriers]] (horseshoe makers). This connects to my broader interest in " +
			"[[niche markets]] and [[B2B SaaS]]. The insight is that underserved trades often have terrible software and will pay well for something that actually works.",
	},
	PerspectivePlural: {
		rule: `Write in first person plural from the USER's perspective — "We" means the user and their AI assistant ("We discussed...", "We decided...", "We're exploring...")`,
		example: "We're considering building software for [[farriers]] (horseshoe makers). This connects to our broader interest in " +
			"[[niche markets]] and [[B2B SaaS]]. The insight is that underserved trades often have terrible software and will pay well for something that actually works.",
	},
}

const extractionPromptTemplate = `You are a knowledge extraction engine for a personal knowledge base.

Given a conversation, extract information worth remembering. Output structured markdown notes.

## Rules
- Only extract genuinely useful information: ideas, decisions, facts, plans, insights, preferences, people, projects
- Skip small talk, greetings, filler, meta-conversation about the AI itself
- If the conversation contains NOTHING worth extracting, respond with exactly: NO_EXTRACTION
- Each distinct topic gets its own note block
- Use [[wikilinks]] for people, projects, tools, concepts
- {RULE}
- Be concise — capture the essence, not the full conversation
- IMPORTANT: When mode is "append", output ONLY the new body text. Do NOT repeat frontmatter.
- IMPORTANT: When mode is "create", include full frontmatter with title, folder, filename, tags, date.

## Output Format
For each note, use this structure. Separate multiple notes with ===

### For NEW notes (mode: create):
---
title: <short descriptive title>
folder: <one of: topics, people, projects, decisions, ideas>
filename: <kebab-case.md>
mode: create
tags: [relevant, tags]
date: <YYYY-MM-DD>
---

<markdown body with [[wikilinks]]>

===

### For UPDATING existing notes (mode: append):
---
folder: <folder>
filename: <existing-filename.md>
mode: append
date: <YYYY-MM-DD>
---

<new information to add — just the body, no title or metadata>

===

## Folder guide
- topics: General knowledge, concepts, learning, interests
- people: People mentioned — friends, colleagues, public figures
- projects: Active projects, businesses, ventures
- decisions: Decisions made with reasoning
- ideas: Raw ideas, creative sparks, what-ifs

## Example

---
title: Niche Software Business Idea
folder: ideas
filename: niche-software-farriers.md
mode: create
tags: [business, software, niche-markets]
date: {DATE}
---

{EXAMPLE}

===`

// buildExtractionPrompt renders the extraction system prompt for a
// perspective, with today's date substituted into the example.
func buildExtractionPrompt(perspective Perspective, today time.Time) string {
	p, ok := perspectiveInstructions[perspective]
	if !ok {
		p = perspectiveInstructions[PerspectiveSecond]
	}
	prompt := strings.ReplaceAll(extractionPromptTemplate, "{RULE}", p.rule)
	prompt = strings.ReplaceAll(prompt, "{EXAMPLE}", p.example)
	return strings.ReplaceAll(prompt, "{DATE}", today.Format("2006-01-02"))
}
