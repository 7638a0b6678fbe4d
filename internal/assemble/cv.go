// Package assemble renders structured documents as Markdown.
package assemble

import (
	"net/url"
	"strings"

	"cv-generator/internal/model"

	"golang.org/x/net/publicsuffix"
)

// DefaultLanguages is used when the profile lists no languages.
const DefaultLanguages = "English: Fluent"

// CVMarkdown renders cv as Markdown. The output has one H1 (the name, when
// present), a contact block, then one H2 per non-empty section, in a fixed
// order. Empty fields produce no block.
func CVMarkdown(cv model.StructuredCV, languages string) string {
	var parts []string

	header := cvHeader(cv.PersonalInfo)
	if len(header) > 0 {
		parts = append(parts, header...)
		parts = append(parts, "---")
	}

	if s := text(cv.Summary); s != "" {
		parts = append(parts, "## Professional Summary", s)
	}

	var jobs []string
	for _, e := range cv.Experience {
		if b := experienceBlock(e); b != "" {
			jobs = append(jobs, b)
		}
	}
	if len(jobs) > 0 {
		parts = append(parts, "## Experience")
		parts = append(parts, jobs...)
	}

	var schools []string
	for _, e := range cv.Education {
		if b := educationBlock(e); b != "" {
			schools = append(schools, b)
		}
	}
	if len(schools) > 0 {
		parts = append(parts, "## Education")
		parts = append(parts, schools...)
	}

	if languages = text(languages); languages == "" {
		languages = DefaultLanguages
	}
	parts = append(parts, "## Languages", languages)

	return strings.Join(parts, "\n\n") + "\n"
}

func cvHeader(p model.CVPersonalInfo) []string {
	var out []string
	if name := inline(p.FullName); name != "" {
		out = append(out, "# "+name)
	}
	if title := inline(p.Title); title != "" {
		out = append(out, "**"+title+"**")
	}
	if contact := joinNonEmpty(" | ", p.Location, p.Phone, p.Email); contact != "" {
		out = append(out, escapeLead(contact))
	}

	var links []string
	for _, l := range []struct{ label, value string }{
		{"Portfolio", p.Portfolio},
		{"GitHub", p.GitHub},
		{"LinkedIn", p.LinkedIn},
	} {
		if v := inline(l.value); v != "" {
			links = append(links, "**"+l.label+":** "+v)
		}
	}
	for _, raw := range p.OtherLinks {
		if v := inline(raw); v != "" {
			links = append(links, "**"+linkLabel(v)+":** "+v)
		}
	}
	if len(links) > 0 {
		out = append(out, strings.Join(links, " | "))
	}
	return out
}

func experienceBlock(e model.CVExperience) string {
	var lines []string
	if t := inline(e.Title); t != "" {
		lines = append(lines, "### "+t)
	}
	if meta := joinNonEmpty(" | ", e.Company, e.Location, e.Period); meta != "" {
		lines = append(lines, "*"+meta+"*")
	}
	lines = append(lines, bullets(e.Responsibilities)...)
	return strings.Join(lines, "\n")
}

func educationBlock(e model.CVEducation) string {
	var lines []string
	if d := inline(e.Degree); d != "" {
		lines = append(lines, "### "+d)
	}
	if meta := joinNonEmpty(" | ", e.Institution, e.Period); meta != "" {
		lines = append(lines, "*"+meta+"*")
	}
	lines = append(lines, bullets(e.Details)...)
	return strings.Join(lines, "\n")
}

// linkLabel names an unlabeled link after its registrable domain, so
// https://www.behance.net/jane becomes "Behance".
func linkLabel(link string) string {
	raw := link
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "Link"
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(u.Hostname())
	if err != nil {
		return "Link"
	}
	name, _, _ := strings.Cut(domain, ".")
	if name == "" {
		return "Link"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
