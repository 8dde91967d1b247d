// Package texts holds the race text corpus and picks entries uniformly at
// random. The core only ever sees a text reference (its index); clients
// fetch the body over HTTP.
package texts

import "math/rand"

// raceTexts is the built-in corpus. Entries are sized for a one-minute
// race at casual typing speed.
var raceTexts = []string{
	"The quick brown fox jumps over the lazy dog while the farmer watches from the porch, wondering whether the fence he built last spring will survive another winter of heavy snow and restless animals.",
	"Typing quickly is less about moving your fingers fast and more about not stopping: a steady rhythm with few corrections beats frantic bursts followed by long pauses on almost every keyboard layout ever designed.",
	"Deep beneath the surface of the ocean, strange creatures drift through darkness so complete that many of them have given up on eyes entirely, trading sight for patience and a faint glow of their own making.",
	"The old library smelled of dust and paper, and every shelf leaned slightly under the weight of stories that nobody had opened in years but that the librarian refused, politely and firmly, to give away.",
	"A good espresso depends on an unreasonable number of small things: the grind, the water, the pressure, the temperature, and the mood of the person pulling the shot on a grey morning before the rush begins.",
	"Programs must be written for people to read, and only incidentally for machines to execute; the compiler does not care about your variable names, but the person debugging your code at midnight certainly does.",
	"The train left the station two minutes early, which everyone aboard agreed was impossible, and yet the platform clock and the conductor's watch told exactly the same improbable story all the way to the coast.",
	"Somewhere between the first draft and the final version, every sentence in the essay changed at least once, and the author could no longer remember which words were originally hers and which had arrived later.",
	"Mountains look permanent from the valley, but geologists will tell you they are merely slow, rising and wearing away over spans of time that make the whole of human history look like a single held breath.",
	"When the power went out, the neighborhood discovered how quiet it could be: no hum of refrigerators, no glow of screens, just conversation on doorsteps and the unfamiliar brightness of stars over the rooftops.",
}

// Provider serves race texts by reference
type Provider struct {
	entries []string
}

// NewProvider creates a provider over the built-in corpus
func NewProvider() *Provider {
	return &Provider{entries: raceTexts}
}

// NewProviderWith creates a provider over a custom corpus. An empty set
// falls back to the built-in corpus, so Pick always has something to draw.
func NewProviderWith(entries []string) *Provider {
	if len(entries) == 0 {
		return NewProvider()
	}
	return &Provider{entries: entries}
}

// Pick returns a text reference drawn uniformly at random
func (p *Provider) Pick() int {
	return rand.Intn(len(p.entries))
}

// Get returns the text for a reference
func (p *Provider) Get(id int) (string, bool) {
	if id < 0 || id >= len(p.entries) {
		return "", false
	}
	return p.entries[id], true
}

// Count returns the size of the content set
func (p *Provider) Count() int {
	return len(p.entries)
}
