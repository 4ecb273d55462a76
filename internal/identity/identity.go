// Package identity answers fixed questions about who built the assistant
// without calling a model.
package identity

import (
	"fmt"
	"strings"
	"time"
)

// Profile describes the creator quoted in the canned answers.
type Profile struct {
	Name          string
	Hometown      string
	Country       string
	AgeAtCreation string
	BirthDate     time.Time
}

func DefaultProfile() Profile {
	return Profile{
		Name:          "Rushil Sharma",
		Hometown:      "Chandigarh",
		Country:       "India",
		AgeAtCreation: "12 and a half",
		BirthDate:     time.Date(2011, time.July, 1, 0, 0, 0, 0, time.UTC),
	}
}

var (
	creatorKeywords = []string{
		"who made you", "who created you", "who developed you", "who is your creator",
		"who built you", "your creator", "your developer", "your maker",
	}
	ageAtCreationKeywords = []string{
		"how old was", "what age", "age when created", "age when made",
		"age when developed", "age when built",
	}
	currentAgeKeywords = []string{
		"current age", "how old now", "age now", "present age", "today age",
	}
)

type Responder struct {
	profile Profile
	now     func() time.Time
}

func New(profile Profile, now func() time.Time) *Responder {
	if now == nil {
		now = time.Now
	}
	return &Responder{profile: profile, now: now}
}

// Respond returns the canned answer for a creator question. The boolean is
// false when the text is not one.
func (r *Responder) Respond(text string) (string, bool) {
	lower := strings.ToLower(text)

	if containsAny(lower, creatorKeywords) {
		return r.creatorAnswer(), true
	}

	if !r.mentionsCreator(lower) {
		return "", false
	}
	if containsAny(lower, ageAtCreationKeywords) {
		return r.ageAtCreationAnswer(), true
	}
	if containsAny(lower, currentAgeKeywords) {
		years, months := Age(r.profile.BirthDate, r.now())
		return r.currentAgeAnswer(years, months), true
	}
	return "", false
}

func (r *Responder) mentionsCreator(lower string) bool {
	if strings.Contains(lower, "creator") || strings.Contains(lower, "developer") {
		return true
	}
	first := strings.ToLower(firstName(r.profile.Name))
	return first != "" && strings.Contains(lower, first)
}

func (r *Responder) creatorAnswer() string {
	p := r.profile
	return fmt.Sprintf("🧑‍💻 **My Creator:**\n\nI was created by **%s** from %s, %s!\n\n"+
		"%s is a talented young developer who built me with passion and dedication, "+
		"working from the beautiful city of %s to make me the advanced AI assistant I am today!",
		p.Name, p.Hometown, p.Country, firstName(p.Name), p.Hometown)
}

func (r *Responder) ageAtCreationAnswer() string {
	p := r.profile
	return fmt.Sprintf("👶 **Creator's Age When I Was Made:**\n\n%s was **%s years old** when I was created! 🎂\n\n"+
		"Pretty impressive for someone so young, right? It shows incredible talent and dedication at such a young age!",
		p.Name, p.AgeAtCreation)
}

func (r *Responder) currentAgeAnswer(years, months int) string {
	p := r.profile
	return fmt.Sprintf("📅 **Creator's Current Age:**\n\n%s is currently **%d years and %d months old**! 🎈\n\n"+
		"*Calculated automatically based on the current date*\n\n"+
		"Quite a bit older than the %s years when I was created!",
		p.Name, years, months, p.AgeAtCreation)
}

// Age returns whole years and remaining months between birth and now.
func Age(birth, now time.Time) (years, months int) {
	years = now.Year() - birth.Year()
	months = int(now.Month()) - int(birth.Month())
	if months < 0 {
		years--
		months += 12
	}
	if now.Day() < birth.Day() {
		months--
		if months < 0 {
			years--
			months += 12
		}
	}
	return years, months
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
