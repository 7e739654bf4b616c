package locale

import "strings"

// Labels holds the user-facing strings the option resolvers attach to
// derived options. It is passed explicitly to formatting calls instead of
// living in a global language singleton.
type Labels struct {
	SelectStartTime string
	SelectEndTime   string
	Now             string
	NextDayHint     string
}

const DefaultLanguage = "en"

var catalogues = map[string]Labels{
	"en": {
		SelectStartTime: "please select start time",
		SelectEndTime:   "please select end time",
		Now:             "now",
		NextDayHint:     "next day",
	},
	"zh-tw": {
		SelectStartTime: "請選擇開始時間",
		SelectEndTime:   "請選擇結束時間",
		Now:             "現在",
		NextDayHint:     "隔天",
	},
}

// For returns the label catalogue for a language tag, falling back to
// English for unknown tags.
func For(lang string) Labels {
	if l, ok := catalogues[strings.ToLower(strings.TrimSpace(lang))]; ok {
		return l
	}
	return catalogues[DefaultLanguage]
}

func Supported() []string {
	langs := make([]string, 0, len(catalogues))
	for lang := range catalogues {
		langs = append(langs, lang)
	}
	return langs
}
