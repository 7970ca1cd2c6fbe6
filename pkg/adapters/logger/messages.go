package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Rendering %s":                     "%s をレンダリング中",
		"Planned %d pages, %.2fs at %dx%d": "%d ページを計画しました (%.2f 秒, %dx%d)",
		"Encoding %d frames at %.1f fps":   "%d フレームを %.1f fps でエンコード中",
		"Mixing %d audio tracks":           "%d 本の音声トラックをミックス中",
		"Output saved to %s":               "出力を %s に保存しました",
		"Summary saved to %s":              "サマリーを %s に保存しました",
		"Interrupted, shutting down...":    "中断されました。シャットダウン中...",

		// Plan stage
		"Planned %d pages (%d video, %d audio clips) over %.2fs at %dx%d": "%d ページを計画 (映像 %d, 音声 %d クリップ) %.2f 秒, %dx%d",

		// Composite stage
		"Loading %d clips":                       "%d クリップを読み込み中",
		"Loaded %d sources (%d distinct images)": "%d ソースを読み込みました (画像 %d 種類)",
		"Compositing %d frames with %d workers":  "%d フレームを %d ワーカーで合成中",

		// Encode and mux stages
		"Encoded %d of %d frames":        "%d / %d フレームをエンコードしました",
		"Encoded %d frames into %s":      "%d フレームを %s にエンコードしました",
		"Mixing %d audio tracks into %s": "%d 本の音声トラックを %s にミックス中",

		// Verify stage
		"Verified %s: %dx%d %s %v": "%s を検証しました: %dx%d %s %v",

		// Projects, templates and voiceovers
		"Loaded %d pages":                 "%d ページを読み込みました",
		"Built %d pages from %s":          "%s から %d ページを作成しました",
		"Built %d pages from template %s": "%d ページをテンプレート %s から作成しました",
		"Voiceover cache hit: %s":         "ナレーションのキャッシュを使用: %s",
		"Synthesizing voiceover: %s":      "ナレーションを合成中: %s",

		// Workspace
		"Created job %s":                "ジョブ %s を作成しました",
		"Removed %d stale jobs from %s": "%d 件の古いジョブを %s から削除しました",

		// Warnings
		"Nothing to render for %s: no pages selected": "%s にはレンダリングする内容がありません: ページが選択されていません",
		"Failed to save plan debug output: %v":        "計画のデバッグ出力の保存に失敗しました: %v",
		"Failed to save frame %d: %v":                 "フレーム %d の保存に失敗しました: %v",
		"Skipping %s: %v":                             "%s をスキップします: %v",

		// Errors
		"Failed to plan timeline: %s":    "タイムラインの計画に失敗しました: %s",
		"Failed to composite frames: %s": "フレームの合成に失敗しました: %s",
		"Failed to encode video: %s":     "動画のエンコードに失敗しました: %s",
		"Failed to mix audio: %s":        "音声のミックスに失敗しました: %s",
		"Output verification failed: %s": "出力の検証に失敗しました: %s",
		"Failed to write output: %s":     "出力の書き込みに失敗しました: %s",
	})
}
