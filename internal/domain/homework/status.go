// internal/domain/homework/status.go
package homework

import (
	"fmt"
	"strings"
)

// Verdict is a review outcome reported by the API.
type Verdict string

const (
	VerdictApproved  Verdict = "approved"
	VerdictReviewing Verdict = "reviewing"
	VerdictRejected  Verdict = "rejected"
)

// Language selects the verdict table and message template.
type Language string

const (
	LanguageEN Language = "en"
	LanguageRU Language = "ru"
)

var verdictTables = map[Language]map[Verdict]string{
	LanguageEN: {
		VerdictApproved:  "Work reviewed: reviewer liked everything. Hooray!",
		VerdictReviewing: "Work taken for review by the reviewer.",
		VerdictRejected:  "Work reviewed: reviewer has remarks.",
	},
	LanguageRU: {
		VerdictApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
		VerdictReviewing: "Работа взята на проверку ревьюером.",
		VerdictRejected:  "Работа проверена: у ревьюера есть замечания.",
	},
}

var templates = map[Language]string{
	LanguageEN: `Changed review status of work "%s". %s`,
	LanguageRU: `Изменился статус проверки работы "%s". %s`,
}

// ParseLanguage maps a config value to a Language; empty means English.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if lang == "" {
		return LanguageEN, nil
	}
	if _, ok := verdictTables[lang]; !ok {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return lang, nil
}

// VerdictTable returns a copy of the verdict sentences for lang.
func VerdictTable(lang Language) map[Verdict]string {
	src := verdictTables[lang]
	out := make(map[Verdict]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Formatter turns homework items into notification text.
type Formatter struct {
	verdicts map[Verdict]string
	template string
}

func NewFormatter(lang Language) *Formatter {
	if _, ok := verdictTables[lang]; !ok {
		lang = LanguageEN
	}
	return &Formatter{verdicts: verdictTables[lang], template: templates[lang]}
}

var defaultFormatter = NewFormatter(LanguageEN)

// ParseStatus formats item with the English verdict table.
func ParseStatus(item Item) (string, error) {
	return defaultFormatter.ParseStatus(item)
}

// ParseStatus builds the notification for a single homework. A status outside
// the verdict table is an error, never a skip.
func (f *Formatter) ParseStatus(item Item) (string, error) {
	name, hasName := item[KeyHomeworkName]
	status, hasStatus := item[KeyStatus]
	if !hasName || !hasStatus {
		return "", Errorf(KindSchema, "one or more keys are missing in homework, %s and %s are required", KeyHomeworkName, KeyStatus)
	}

	code, _ := status.(string)
	verdict, ok := f.verdicts[Verdict(code)]
	if !ok {
		return "", Errorf(KindUnknownVerdict, "unexpected status of homework: %v", status)
	}

	return fmt.Sprintf(f.template, fmt.Sprint(name), verdict), nil
}
