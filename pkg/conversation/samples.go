package conversation

import "time"

// SampleConversations returns the three hand-authored conversations the app
// seeds at startup. Timestamps are fixed relative to now so the sidebar date
// buckets come out the same on every run.
func SampleConversations(now time.Time) []*Conversation {
	return []*Conversation{
		NewConversation(
			WithConversationID("conv-1"),
			WithTitle("Ideate launch messaging"),
			WithPreview("Let’s draft a product announcement that feels human and warm…"),
			WithPinned(true),
			WithLastActivityAt(now),
			WithMessages(
				NewMessage(RoleAssistant,
					"Absolutely! Let’s craft a launch announcement that feels personal yet polished. What tone do you want to lead with?",
					WithID("conv-1-msg-1"),
					WithCreatedAt(now.Add(-5*time.Minute)),
				),
				NewMessage(RoleUser,
					"Friendly and confident. Highlight the new canvas workflow and real-time collaboration.",
					WithID("conv-1-msg-2"),
					WithCreatedAt(now.Add(-3*time.Minute)),
				),
			),
		),
		NewConversation(
			WithConversationID("conv-2"),
			WithTitle("React performance review"),
			WithPreview("Profiling shows hydration costs. Suggest streaming UI tactics…"),
			WithLastActivityAt(now.Add(-2*time.Hour)),
			WithMessages(
				NewMessage(RoleUser,
					"I’m seeing hydration taking ~250ms on the marketing page. How can I improve it without losing fidelity?",
					WithID("conv-2-msg-1"),
					WithCreatedAt(now.Add(-4*time.Hour)),
				),
				NewMessage(RoleAssistant,
					"Consider server components for static copy and progressively hydrate the hero animation. Also, lazy-load the analytics widget.",
					WithID("conv-2-msg-2"),
					WithCreatedAt(now.Add(-3*time.Hour-30*time.Minute)),
				),
			),
		),
		NewConversation(
			WithConversationID("conv-3"),
			WithTitle("Weekend meal planner"),
			WithPreview("Finalize grocery list with seasonal vegetables and easy prep…"),
			WithLastActivityAt(now.Add(-24*time.Hour)),
			WithMessages(
				NewMessage(RoleAssistant,
					"Here’s a cozy weekend plan: roasted squash soup, citrus salad, and a no-fuss pasta bake. Want a shopping list?",
					WithID("conv-3-msg-1"),
					WithCreatedAt(now.Add(-24*time.Hour-30*time.Minute)),
				),
				NewMessage(RoleUser,
					"Yes please, include dessert ideas that aren’t too sweet.",
					WithID("conv-3-msg-2"),
					WithCreatedAt(now.Add(-24*time.Hour-20*time.Minute)),
				),
			),
		),
	}
}
