package controller

import (
	"fmt"
	"strings"

	"github.com/handboekai/handboek-api/relay/budget"
	relaymodel "github.com/handboekai/handboek-api/relay/model"
)

const systemPrompt = `Je bent een ervaren onderwijsauteur die lesmateriaal schrijft voor docenten.
Schrijf helder, feitelijk correct Nederlands op het niveau van de doelgroep.
Gebruik uitsluitend Markdown voor opmaak: koppen, vetgedrukte kernbegrippen, lijsten.
Gebruik geen HTML-tags in je antwoord.`

// BuildPrompt assembles the user prompt for a chapter generation request.
// Prior chapter titles are included so the model keeps continuity, but their
// bodies are not: the token budget accounts for titles only.
func BuildPrompt(req *relaymodel.GenerateRequest, handbookTitle, subject, level string, priorTitles []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Schrijf hoofdstuk %d, getiteld %q, voor het handboek %q.\n", req.ChapterIndex, req.ChapterTitle, handbookTitle)
	if subject != "" {
		fmt.Fprintf(&b, "Vak: %s.\n", subject)
	}
	if level != "" {
		fmt.Fprintf(&b, "Niveau: %s.\n", level)
	}

	sections := sectionTitles(req)
	if len(sections) > 0 {
		b.WriteString("Gebruik deze opbouw:\n")
		for _, s := range sections {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	if req.WordCount > 0 {
		fmt.Fprintf(&b, "Richtlengte: ongeveer %d woorden.\n", req.WordCount)
	} else if preset, ok := budget.PresetWordCount(req.SizePreset); ok {
		fmt.Fprintf(&b, "Richtlengte: ongeveer %d woorden.\n", preset)
	}

	if req.IncludeImages {
		b.WriteString("Stel op geschikte plekken een illustratie voor met een beschrijving tussen [AFBEELDING: ...].\n")
	}
	if req.IncludeSources {
		b.WriteString("Sluit af met een bronnenlijst van betrouwbare, controleerbare bronnen.\n")
	}

	if len(priorTitles) > 0 {
		b.WriteString("Eerdere hoofdstukken in dit handboek:\n")
		for i, title := range priorTitles {
			fmt.Fprintf(&b, "%d. %s\n", i+1, title)
		}
		b.WriteString("Verwijs waar zinvol terug naar deze hoofdstukken en vermijd herhaling.\n")
	}

	if req.Instructions != "" {
		fmt.Fprintf(&b, "Aanvullende instructies van de docent: %s\n", req.Instructions)
	}

	return b.String()
}

// sectionTitles resolves the section list: custom sections win, otherwise the
// selected template's sections, otherwise none.
func sectionTitles(req *relaymodel.GenerateRequest) []string {
	if len(req.CustomSections) > 0 {
		return req.CustomSections
	}
	tmpl, ok := budget.Templates[req.TemplateID]
	if !ok {
		return nil
	}
	titles := make([]string, 0, len(tmpl.Sections))
	for _, s := range tmpl.Sections {
		if s.Required {
			titles = append(titles, s.Title)
		}
	}
	return titles
}
