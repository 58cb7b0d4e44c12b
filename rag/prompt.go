package rag

import (
	"context"
	"strings"
)

// personaPrompt is the assistant's base system prompt.
const personaPrompt = `You are Mycelia, a thoughtful personal AI companion. The user talks to you about their day, ideas, plans, and thoughts. You're like a smart, curious friend who genuinely cares about what they're working on.

Be concise and natural. Ask follow-up questions to draw out insights when something seems interesting. Help them think through problems. Remember context from earlier in the conversation.

Don't be overly formal or use bullet points unless asked. Just talk like a real person.`

// vaultContextPreamble introduces the retrieved notes.
const vaultContextPreamble = `You have access to relevant notes from the user's personal knowledge base below. Use them naturally in conversation — reference their notes, projects, people, and ideas when relevant. When you draw from their notes, briefly mention which note you're referencing. If you can't find the answer in the notes, just be helpful as usual — don't mention that notes were searched.`

// SystemPrompt builds the full system prompt for a query. Context
// assembly failures degrade to the persona prompt alone: a broken
// vault read should never block the conversation.
func (b *Builder) SystemPrompt(ctx context.Context, query string) string {
	vaultContext, err := b.Build(ctx, query)
	if err != nil {
		b.logger.Warn("vault context unavailable", "err", err)
		return personaPrompt
	}
	if vaultContext == "" {
		return personaPrompt
	}

	var sb strings.Builder
	sb.WriteString(personaPrompt)
	sb.WriteString("\n\n")
	sb.WriteString(vaultContextPreamble)
	sb.WriteString("\n\n<vault_context>\n")
	sb.WriteString(vaultContext)
	sb.WriteString("\n</vault_context>")
	return sb.String()
}
