package app

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// TrayLabels holds the tray menu captions for one language.
type TrayLabels struct {
	Show string
	Hide string
	Quit string
}

var (
	labelTags = []language.Tag{
		language.English, // fallback
		language.SimplifiedChinese,
	}
	labelSets = []TrayLabels{
		{Show: "Show Window", Hide: "Hide Window", Quit: "Quit"},
		{Show: "显示窗口", Hide: "隐藏窗口", Quit: "退出"},
	}
	labelMatcher = language.NewMatcher(labelTags)
)

// LabelsFor returns the tray captions best matching locale. An empty locale
// falls back to the process environment.
func LabelsFor(locale string) TrayLabels {
	if locale == "" {
		locale = systemLocale()
	}
	tag, err := language.Parse(posixToBCP47(locale))
	if err != nil {
		return labelSets[0]
	}
	_, idx, _ := labelMatcher.Match(tag)
	return labelSets[idx]
}

func systemLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// posixToBCP47 turns "zh_CN.UTF-8" into "zh-CN".
func posixToBCP47(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(locale, "_", "-")
}
