// Package prompt picks journal prompts.
package prompt

import (
	"math/rand/v2"
	"time"
)

// Prompts are the journal prompts, cycled through by day of year.
var Prompts = []string{
	"What's one thing you're grateful for today?",
	"What did you learn about yourself this week?",
	"If today was a movie, what would the title be?",
	"What's something that made you smile recently?",
	"What's one thing you'd like to let go of?",
	"What does success look like for you today?",
	"What's a fear you'd like to overcome?",
	"How do you want to feel at the end of today?",
	"What's the ONE thing you must accomplish today?",
	"What's been distracting you lately? How can you minimize it?",
	"What would make today feel productive?",
	"What task have you been avoiding? Why?",
	"How can you make your workspace more inspiring?",
	"Take 3 deep breaths. How do you feel right now?",
	"What does your body need today? Rest, movement, or nourishment?",
	"Name 3 things you can see, hear, and feel right now.",
	"What's one kind thing you can do for yourself today?",
	"How can you be more present in this moment?",
	"Drink a full glass of water right now.",
	"Do 10 jumping jacks or stretch for 1 minute.",
	"Send a message to someone you appreciate.",
	"Clean one small area of your space.",
	"Write down 3 things that went well yesterday.",
	"If you could master any skill instantly, what would it be?",
	"Describe your ideal day from start to finish.",
	"What would you do if you knew you couldn't fail?",
	"What's a problem you'd love to solve?",
	"What brings you energy and what drains it?",
}

// Daily returns the prompt for now's day of year. Every call on the same
// local day returns the same prompt.
func Daily(now time.Time) string {
	return Prompts[now.Local().YearDay()%len(Prompts)]
}

// Random returns any prompt.
func Random() string {
	return Prompts[rand.IntN(len(Prompts))]
}
