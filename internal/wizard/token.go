package wizard

import "strings"

// Button token kinds. A token is "kind:value".
const (
	kindSubject   = "subject"
	kindTopic     = "topic"
	kindAges      = "ages"
	kindDuration  = "duration"
	kindCountry   = "country"
	kindMaterials = "materials"
	kindStyle     = "style"
	kindFormat    = "format"
	kindShare     = "share"
	kindAction    = "action"
	kindBrowse    = "browse"
	kindSearch    = "search"
	kindGet       = "get"
	kindLang      = "lang"
)

// Values shared by several kinds.
const (
	valOther  = "other"
	valSkip   = "skip"
	valMore   = "more"
	valCustom = "custom"
)

// Actions.
const (
	actNew       = "new"
	actBrowse    = "browse"
	actTweak     = "tweak"
	actNewTopic  = "new_topic"
	actLanguage  = "language"
	actCancel    = "cancel"
	actCustomize = "customize"
	actPDF       = "pdf"
	actShare     = "share"
)

func token(kind, value string) string { return kind + ":" + value }

func parseToken(t string) (kind, value string) {
	kind, value, _ = strings.Cut(strings.TrimSpace(t), ":")
	return kind, value
}
