package sectag

import (
	"strings"
	"sync"
)

// keywordRule pairs a label with its title patterns. The position of a rule
// in the table is its match priority: for a given title the first label
// whose pattern set matches wins.
type keywordRule struct {
	label    Label
	patterns []string
}

// keywordTable returns the shared keyword rule table. The table is built
// once and is immutable afterwards, so unsynchronized concurrent reads
// from multiple classification calls are safe.
var keywordTable = sync.OnceValue(buildKeywordTable)

// buildKeywordTable constructs the ordered rule table. Patterns are
// lower-case phrases matched by substring containment against normalized
// titles; each label's set spans the institutional vocabulary of
// multilingual evaluation reports (English, French, Spanish, Russian,
// Hindi, Arabic, Portuguese, German, Italian).
//
// Substring containment is used instead of word-boundary regexps because
// RE2 word boundaries are ASCII-only and several pattern sets are in
// Cyrillic, Devanagari or Arabic script.
func buildKeywordTable() []keywordRule {
	return []keywordRule{
		{LabelFrontMatter, []string{
			"table of contents",
			"contents",
			"list of figures",
			"list of tables",
			"list of boxes",
			"list of illustrations",
			"list of maps",
			"acknowledgement",
			"acknowledgment",
			"foreword",
			"preface",
			"copyright",
			"disclaimer",
			"sommaire",
			"table des matières",
			"table des matieres",
			"liste des figures",
			"liste des tableaux",
			"liste des encadrés",
			"remerciements",
			"avant-propos",
			"préface",
			"índice",
			"indice",
			"tabla de contenido",
			"lista de figuras",
			"lista de tablas",
			"lista de cuadros",
			"agradecimientos",
			"prefacio",
			"agradecimentos",
			"prefácio",
			"содержание",
			"оглавление",
			"список рисунков",
			"список таблиц",
			"благодарности",
			"предисловие",
			"विषय सूची",
			"विषय-सूची",
			"अनुक्रमणिका",
			"आभार",
			"جدول المحتويات",
			"المحتويات",
			"قائمة الأشكال",
			"قائمة الجداول",
			"شكر وتقدير",
			"تمهيد",
			"inhaltsverzeichnis",
			"abbildungsverzeichnis",
			"tabellenverzeichnis",
			"vorwort",
			"indice dei contenuti",
			"elenco delle figure",
			"premessa",
		}},
		{LabelAcronyms, []string{
			"acronym",
			"abbreviation",
			"abréviation",
			"abreviation",
			"sigles",
			"siglas",
			"acrónimo",
			"acronimo",
			"abreviaturas",
			"abreviações",
			"abreviacoes",
			"сокращени",
			"аббревиатур",
			"условные обозначения",
			"संक्षिप्त",
			"संक्षेपाक्षर",
			"الاختصارات",
			"المختصرات",
			"abkürzung",
			"abkuerzung",
			"acronimi",
			"sigle e abbreviazioni",
		}},
		{LabelExecutiveSummary, []string{
			"executive summary",
			"résumé exécutif",
			"resume executif",
			"résumé analytique",
			"synthèse",
			"synthese",
			"resumen ejecutivo",
			"sumario ejecutivo",
			"sumário executivo",
			"резюме",
			"краткий обзор",
			"कार्यकारी सारांश",
			"सारांश",
			"موجز تنفيذي",
			"الموجز التنفيذي",
			"ملخص تنفيذي",
			"الملخص",
			"zusammenfassung",
			"kurzfassung",
			"sintesi",
			"sommario esecutivo",
		}},
		{LabelRecommendations, []string{
			"recommendation",
			"recommandation",
			"recomendación",
			"recomendacion",
			"recomendações",
			"recomendacoes",
			"рекомендаци",
			"सिफारिश",
			"अनुशंसा",
			"التوصيات",
			"توصيات",
			"empfehlung",
			"raccomandazioni",
		}},
		{LabelConclusions, []string{
			"conclusion",
			"conclusión",
			"conclusiones",
			"conclusões",
			"conclusoes",
			"lessons learned",
			"lessons learnt",
			"leçons apprises",
			"leçons tirées",
			"lecciones aprendidas",
			"lições aprendidas",
			"заключени",
			"выводы",
			"извлеченные уроки",
			"निष्कर्ष",
			"सीख",
			"الاستنتاجات",
			"استنتاجات",
			"الخلاصة",
			"الدروس المستفادة",
			"schlussfolgerung",
			"fazit",
			"conclusioni",
		}},
		{LabelMethodology, []string{
			"methodolog",
			"method",
			"méthodolog",
			"méthode",
			"metodolog",
			"método",
			"metodo",
			"evaluation approach",
			"approche de l'évaluation",
			"методолог",
			"методика",
			"कार्यप्रणाली",
			"पद्धति",
			"المنهجية",
			"منهجية",
			"methodik",
			"vorgehensweise",
		}},
		{LabelIntroduction, []string{
			"introduction",
			"introducción",
			"introduccion",
			"introdução",
			"introducao",
			"введение",
			"परिचय",
			"प्रस्तावना",
			"المقدمة",
			"مقدمة",
			"einleitung",
			"einführung",
			"einfuhrung",
			"introduzione",
		}},
		{LabelContext, []string{
			"context",
			"contexte",
			"contexto",
			"background",
			"country background",
			"object of the evaluation",
			"objet de l'évaluation",
			"description of the intervention",
			"контекст",
			"предпосылки",
			"पृष्ठभूमि",
			"السياق",
			"خلفية",
			"hintergrund",
			"contesto",
		}},
		{LabelAppendix, []string{
			"appendix",
			"appendices",
			"appendixes",
			"apéndice",
			"apendice",
			"apêndice",
			"apendices",
			"anhang",
			"anhänge",
			"appendice",
			"appendici",
			"परिशिष्ट",
		}},
		{LabelFindings, []string{
			"finding",
			"key results",
			"results",
			"result",
			"analysis",
			"constatations",
			"constats",
			"analyse",
			"résultats",
			"resultats",
			"hallazgos",
			"resultados",
			"análisis",
			"analisis",
			"результаты",
			"анализ",
			"परिणाम",
			"विश्लेषण",
			"النتائج",
			"نتائج",
			"ergebnisse",
			"feststellungen",
			"risultati",
		}},
		{LabelBibliography, []string{
			"bibliograph",
			"bibliographie",
			"bibliografía",
			"bibliografia",
			"references",
			"références",
			"referencias",
			"referências",
			"works cited",
			"sources consulted",
			"documents consulted",
			"documents consultés",
			"библиограф",
			"список литературы",
			"литератур",
			"संदर्भ सूची",
			"ग्रंथ सूची",
			"المراجع",
			"قائمة المراجع",
			"literaturverzeichnis",
			"riferimenti",
		}},
		{LabelAnnexes, []string{
			"annex",
			"annexe",
			"anexo",
			"anexos",
			"annexure",
			"приложени",
			"अनुलग्नक",
			"الملاحق",
			"ملحق",
			"المرفقات",
			"مرفق",
			"anlage",
			"anlagen",
			"allegato",
			"allegati",
		}},
	}
}

// broadAnnexPatterns matches annex-like titles across the annex, appendix,
// attachment and terms-of-reference vocabulary. Used by the explicit annex
// detection pass, which casts a wider net than keyword locking.
var broadAnnexPatterns = sync.OnceValue(func() []string {
	var patterns []string
	for _, rule := range keywordTable() {
		if rule.label == LabelAnnexes || rule.label == LabelAppendix {
			patterns = append(patterns, rule.patterns...)
		}
	}
	return append(patterns,
		"attachment",
		"terms of reference",
		"termes de référence",
		"termes de reference",
		"términos de referencia",
		"terminos de referencia",
		"termos de referência",
		"техническое задание",
		"круг ведения",
		"विचारार्थ विषय",
		"الشروط المرجعية",
		"pièce jointe",
		"pièces jointes",
	)
})

// LockKeywords scans each entry's normalized title against the rule table
// label-by-label, pattern-by-pattern, in table order, and assigns the first
// matching label. Entries with no match are absent from the result map.
func LockKeywords(entries []Entry) LabelMap {
	locked := make(LabelMap)

	for _, entry := range entries {
		if entry.NormalizedTitle == "" {
			continue
		}
		if label, ok := lockLabel(entry.NormalizedTitle); ok {
			locked[entry.Index] = label
		}
	}

	return locked
}

// lockLabel returns the first label in table order with a matching pattern.
func lockLabel(normalizedTitle string) (Label, bool) {
	for _, rule := range keywordTable() {
		for _, pattern := range rule.patterns {
			if strings.Contains(normalizedTitle, pattern) {
				return rule.label, true
			}
		}
	}
	return "", false
}

// matchesLabel reports whether a normalized title matches the keyword
// patterns of a specific label.
func matchesLabel(normalizedTitle string, label Label) bool {
	for _, rule := range keywordTable() {
		if rule.label != label {
			continue
		}
		for _, pattern := range rule.patterns {
			if strings.Contains(normalizedTitle, pattern) {
				return true
			}
		}
	}
	return false
}

// matchesBroadAnnex reports whether a normalized title matches the broad
// annex/appendix/attachment/terms-of-reference vocabulary.
func matchesBroadAnnex(normalizedTitle string) bool {
	for _, pattern := range broadAnnexPatterns() {
		if strings.Contains(normalizedTitle, pattern) {
			return true
		}
	}
	return false
}
