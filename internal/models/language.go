package models

import (
	"errors"
	"strings"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

type Language string

const (
	English  Language = "English"
	Spanish  Language = "Spanish"
	Japanese Language = "Japanese"
	Hindi    Language = "Hindi"
)

// BaseLanguage is the language the generator writes in; every other
// variant is translated from it.
const BaseLanguage = English

var languageCodes = map[Language]string{
	English:  "en",
	Spanish:  "es",
	Japanese: "ja",
	Hindi:    "hi",
}

// SupportedLanguages lists every language a summary is produced in, base first.
func SupportedLanguages() []Language {
	return []Language{English, Spanish, Japanese, Hindi}
}

// TranslatedLanguages lists the languages derived from the base variant.
func TranslatedLanguages() []Language {
	return []Language{Spanish, Japanese, Hindi}
}

func (l Language) Code() string {
	return languageCodes[l]
}

func (l Language) Valid() bool {
	_, ok := languageCodes[l]
	return ok
}

// ParseLanguage accepts a language name or its two-letter code, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for lang, code := range languageCodes {
		if strings.EqualFold(s, string(lang)) || strings.EqualFold(s, code) {
			return lang, nil
		}
	}
	return "", ErrUnsupportedLanguage
}
