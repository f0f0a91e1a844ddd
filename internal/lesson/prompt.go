package lesson

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lithammer/dedent"

	"github.com/tooley/tooley/internal/i18n"
)

// Prompt is what goes to the generation backend.
type Prompt struct {
	System string
	User   string
}

// Timings splits a class into opening, main activity and closing minutes.
type Timings struct {
	Opening int
	Main    int
	Closing int
}

// Minutes reads a class length. Anything without a positive number in it
// counts as 45.
func Minutes(duration string) int {
	n := 0
	found := false
	for _, r := range strings.TrimSpace(duration) {
		if !unicode.IsDigit(r) {
			if found {
				break
			}
			continue
		}
		found = true
		n = n*10 + int(r-'0')
		if n > 10000 {
			break
		}
	}
	if n <= 0 {
		return 45
	}
	return n
}

// SplitMinutes gives 15/60/25 percent of the class with truncating division.
func SplitMinutes(minutes int) Timings {
	return Timings{
		Opening: minutes * 15 / 100,
		Main:    minutes * 60 / 100,
		Closing: minutes * 25 / 100,
	}
}

// SectionHeaders are the nine headers the backend is told to use, in order.
func SectionHeaders(loc i18n.Locale, minutes int) []string {
	t := SplitMinutes(minutes)
	if loc == i18n.Spanish {
		return []string{
			"## Objetivos de Aprendizaje",
			"## Materiales Necesarios",
			fmt.Sprintf("## Apertura (%d min)", t.Opening),
			fmt.Sprintf("## Actividad Principal (%d min)", t.Main),
			"## Práctica",
			fmt.Sprintf("## Cierre (%d min)", t.Closing),
			"## Diferenciación",
			"## Evaluación",
			"## Consejos para el Docente",
		}
	}
	return []string{
		"## Learning Objectives",
		"## Materials Needed",
		fmt.Sprintf("## Opening (%d min)", t.Opening),
		fmt.Sprintf("## Main Activity (%d min)", t.Main),
		"## Practice",
		fmt.Sprintf("## Closing (%d min)", t.Closing),
		"## Differentiation",
		"## Assessment",
		"## Teacher Tips",
	}
}

type vocabulary struct {
	materials map[Materials]string
	styles    map[Style]string
	formats   map[Format]string
}

var vocab = map[i18n.Locale]vocabulary{
	i18n.English: {
		materials: map[Materials]string{
			MaterialsNone:     "NO MATERIALS - use only verbal activities, movement, imagination",
			MaterialsBasic:    "Basic materials - paper, pencils, blackboard",
			MaterialsStandard: "Full classroom supplies available",
		},
		styles: map[Style]string{
			StyleInteractive:  "Highly participatory: games, group work, movement and hands-on activities",
			StyleStructured:   "Teacher-led, with clear step-by-step instructions",
			StyleStorytelling: "Teach through narrative, with characters and scenarios",
			StyleMixed:        "Balance different teaching approaches as appropriate for each activity",
		},
		formats: map[Format]string{
			FormatQuick:    "Keep it brief, about 200 words in total: one sentence per section where possible, one main activity with what to say, one check-for-understanding question and one tip.",
			FormatStandard: "Complete but concise, about 500 words. Give timing for each step of the main activity.",
			FormatFull:     "Comprehensive, about 800 words. Under Assessment give 3-5 quiz questions with answers. Under Teacher Tips add an extension activity for homework or follow-up and a note on how this links to previous and next lessons.",
		},
	},
	i18n.Spanish: {
		materials: map[Materials]string{
			MaterialsNone:     "SIN MATERIALES - usar solo actividades verbales, movimiento, imaginación",
			MaterialsBasic:    "Materiales básicos - papel, lápices, pizarra",
			MaterialsStandard: "Útiles completos de aula disponibles",
		},
		styles: map[Style]string{
			StyleInteractive:  "Muy participativo: juegos, trabajo en grupo, movimiento y actividades prácticas",
			StyleStructured:   "Dirigido por el docente, con instrucciones claras paso a paso",
			StyleStorytelling: "Enseñar con narrativa, creando personajes y escenarios",
			StyleMixed:        "Equilibrar distintos enfoques de enseñanza según cada actividad",
		},
		formats: map[Format]string{
			FormatQuick:    "Sé breve, unas 200 palabras en total: una oración por sección cuando sea posible, una actividad principal con lo que hay que decir, una pregunta para comprobar la comprensión y un consejo.",
			FormatStandard: "Completo pero conciso, unas 500 palabras. Indica el tiempo de cada paso de la actividad principal.",
			FormatFull:     "Exhaustivo, unas 800 palabras. En Evaluación incluye de 3 a 5 preguntas de cuestionario con respuestas. En Consejos para el Docente agrega una actividad de extensión para casa o de seguimiento y una nota sobre cómo se conecta con las lecciones anteriores y siguientes.",
		},
	},
}

func vocabFor(loc i18n.Locale) vocabulary {
	if v, ok := vocab[loc]; ok {
		return v
	}
	return vocab[i18n.English]
}

// MaterialsPhrase is the prompt wording for the materials answer.
func MaterialsPhrase(loc i18n.Locale, m Materials, note string) string {
	if m == MaterialsCustom {
		return note
	}
	if s, ok := vocabFor(loc).materials[m]; ok {
		return s
	}
	return m.Value
}

// StylePhrase is the prompt wording for the teaching style answer.
func StylePhrase(loc i18n.Locale, s Style, note string) string {
	if s == StyleCustom {
		return note
	}
	if phrase, ok := vocabFor(loc).styles[s]; ok {
		return phrase
	}
	return s.Value
}

const userTemplateEN = `
	Create a detailed %d-minute lesson plan with these specifications:

	**Subject:** %s
	**Topic:** %s
	**Student Ages:** %s years old
	**Duration:** %d minutes
	**Location/Context:** %s
	**Available Materials:** %s
	**Teaching Style:** %s
`

const userTemplateES = `
	Crea un plan de lección detallado de %d minutos con estas especificaciones:

	**Materia:** %s
	**Tema:** %s
	**Edades de los estudiantes:** %s años
	**Duración:** %d minutos
	**Ubicación/Contexto:** %s
	**Materiales disponibles:** %s
	**Estilo de enseñanza:** %s
`

type promptText struct {
	template  string
	special   string
	sections  string
	guideHead string
	local     string
	universal string
	location  string
	guides    []string
	length    string
	critical  string
}

var texts = map[i18n.Locale]promptText{
	i18n.English: {
		template:  userTemplateEN,
		special:   "**Special Requests:** %s\n",
		sections:  "Format your response as a lesson plan with exactly these sections, in this order, using these headers verbatim:",
		guideHead: "Guidelines:",
		local:     "Use culturally relevant examples for %s (money, food, games, places)",
		universal: "Use examples that work in any country",
		location:  "Universal",
		guides: []string{
			"Keep language clear and accessible",
			"Include what to say and ask, not just what to do",
			"Include at least one activity that needs no materials at all",
			"Suggest adaptations for different skill levels",
		},
		length:   "Length: %s",
		critical: "CRITICAL: Every section must have real content.",
	},
	i18n.Spanish: {
		template:  userTemplateES,
		special:   "**Pedidos especiales:** %s\n",
		sections:  "Formatea tu respuesta como un plan de lección con exactamente estas secciones, en este orden, usando estos encabezados tal cual:",
		guideHead: "Pautas:",
		local:     "Usa ejemplos culturalmente relevantes para %s (dinero, comida, juegos, lugares)",
		universal: "Usa ejemplos que funcionen en cualquier país",
		location:  "Cualquier país",
		guides: []string{
			"Mantén el lenguaje claro y accesible",
			"Incluye qué decir y qué preguntar, no solo qué hacer",
			"Incluye al menos una actividad que no necesite ningún material",
			"Sugiere adaptaciones para distintos niveles de habilidad",
		},
		length:   "Extensión: %s",
		critical: "CRÍTICO: Cada sección debe tener contenido real.",
	},
}

// BuildPrompt renders parameters into the system and user prompts for the
// parameters' language. Unset fields take their defaults first.
func BuildPrompt(p Parameters) Prompt {
	p = p.WithDefaults()
	loc := p.Language
	tx, ok := texts[loc]
	if !ok {
		loc = i18n.English
		tx = texts[loc]
	}
	minutes := Minutes(p.Duration)

	location := tx.location
	guideLocal := tx.universal
	if p.HasCountry() {
		location = strings.TrimSpace(p.Country)
		guideLocal = fmt.Sprintf(tx.local, location)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(dedent.Dedent(strings.TrimPrefix(tx.template, "\n")),
		minutes,
		strings.TrimSpace(p.Subject),
		strings.TrimSpace(p.Topic),
		strings.TrimSpace(p.Ages),
		minutes,
		location,
		MaterialsPhrase(loc, p.Materials, p.MaterialsNote),
		StylePhrase(loc, p.Style, p.StyleNote),
	))
	if sr := strings.TrimSpace(p.SpecialRequests); sr != "" {
		b.WriteString(fmt.Sprintf(tx.special, sr))
	}

	b.WriteString("\n")
	b.WriteString(tx.sections)
	b.WriteString("\n")
	for _, h := range SectionHeaders(loc, minutes) {
		b.WriteString(h)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tx.guideHead)
	b.WriteString("\n- ")
	b.WriteString(guideLocal)
	for _, g := range tx.guides {
		b.WriteString("\n- ")
		b.WriteString(g)
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf(tx.length, vocabFor(loc).formats[p.Format]))
	b.WriteString("\n\n")
	b.WriteString(tx.critical)

	return Prompt{System: SystemPrompt(loc), User: b.String()}
}

// RevisionPrompt asks for a revised version of a previous plan.
func RevisionPrompt(loc i18n.Locale, previous, feedback string) string {
	if loc == i18n.Spanish {
		return fmt.Sprintf("Este es un plan de lección que creé antes:\n\n%s\n\nEl docente pidió estos cambios: %s\n\nRevisa el plan de lección incorporando sus comentarios. Mantén la misma estructura general y los mismos encabezados.", previous, feedback)
	}
	return fmt.Sprintf("Here is a lesson plan I previously created:\n\n%s\n\nThe teacher has requested these changes: %s\n\nPlease revise the lesson plan incorporating their feedback. Keep the same general structure and format.", previous, feedback)
}
