// Package main provides localization for the storyshow CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Version command
		"storyshow version %s": "storyshow バージョン %s",

		// Summary content
		"Render Summary": "レンダリングサマリー",
		"Movie":          "ムービー",
		"Item":           "項目",
		"Value":          "値",
		"Title":          "タイトル",
		"Pages":          "ページ",
		"Name":           "名前",
		"Start":          "開始",
		"End":            "終了",
		"Generated at":   "生成日時",
		"Render Time":    "レンダリング時間",

		// Settings section
		"Settings": "設定",
		"Preset":   "プリセット",
		"Quality":  "品質",
		"Canvas":   "キャンバス",
		"Upscaler": "拡大率",
		"Codec":    "コーデック",

		// Output section
		"Output":       "出力",
		"File":         "ファイル",
		"Size":         "サイズ",
		"Frames":       "フレーム数",
		"Duration":     "再生時間",
		"Audio Tracks": "音声トラック数",
		"Codecs":       "コーデック",
		"File Size":    "ファイルサイズ",

		"Nothing was rendered: no pages selected.": "ページが選択されていないため、何もレンダリングされませんでした。",
	})
}
