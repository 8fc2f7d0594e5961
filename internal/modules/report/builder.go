package report

import (
	"fmt"
	"strings"

	"github.com/review-monitor/core/internal/models"
)

const (
	// MaxNegativeCommentsInReport caps the per-comment section of a report.
	MaxNegativeCommentsInReport = 50
	// MaxSummaryItems caps the one-line digest stored next to the report.
	MaxSummaryItems = 10
	// summarySnippetRunes caps each comment snippet inside the digest.
	summarySnippetRunes = 80
)

// BuildReportHeader renders the markdown preamble of a monitoring report.
// Dimension counts are listed in the canonical dimension order.
func BuildReportHeader(reportDate string, productName *string, productURL string, negativeCount int, summary models.DimensionSummary) []string {
	label := productURL
	if productName != nil && *productName != "" {
		label = *productName
	}
	if label == "" {
		label = "-"
	}

	lines := []string{
		"# 电商负面评论监测报告",
		"报告日期：" + reportDate,
		"商品：" + label,
		"",
		"## 概览",
		fmt.Sprintf("负面评论数：%d", negativeCount),
		"",
		"## 按问题维度分布",
	}
	for _, dim := range models.Dimensions {
		lines = append(lines, fmt.Sprintf("- %s：%d", dim, summary[dim]))
	}
	lines = append(lines, "", "## 负面评论列表")
	return lines
}

// BuildNegativeCommentLines renders at most maxItems comment sections, with a
// trailing note when the list was cut off.
func BuildNegativeCommentLines(negativeList []models.NegativeComment, maxItems int) []string {
	lines := make([]string, 0, len(negativeList)*6)
	shown := negativeList
	if len(shown) > maxItems {
		shown = shown[:maxItems]
	}
	for i, c := range shown {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("### %d. [%s] %s (评分: %d)", i+1, c.CommentID, c.UserName, c.Rating))
		lines = append(lines, "时间："+c.CommentTime)
		if len(c.Dimensions) > 0 {
			lines = append(lines, "问题维度："+strings.Join(c.Dimensions, "、"))
		}
		if c.Keywords != "" {
			lines = append(lines, "关键词："+c.Keywords)
		}
		lines = append(lines, "内容："+c.CommentText)
	}
	if len(negativeList) > maxItems {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("... 共 %d 条负面评论，以上仅展示前 %d 条", len(negativeList), maxItems))
	}
	return lines
}

// BuildReportContent assembles the full markdown report body.
func BuildReportContent(reportDate string, productName *string, productURL string, negativeList []models.NegativeComment, summary models.DimensionSummary) string {
	lines := BuildReportHeader(reportDate, productName, productURL, len(negativeList), summary)
	lines = append(lines, BuildNegativeCommentLines(negativeList, MaxNegativeCommentsInReport)...)
	return strings.Join(lines, "\n")
}

// BuildNegativeSummary produces the one-line digest of at most maxItems
// negative comments.
func BuildNegativeSummary(negativeList []models.NegativeComment, maxItems int) string {
	if len(negativeList) == 0 {
		return "本周期无负面评论。"
	}

	shown := negativeList
	if len(shown) > maxItems {
		shown = shown[:maxItems]
	}
	parts := make([]string, 0, len(shown))
	for _, c := range shown {
		text := c.CommentText
		suffix := ""
		if runes := []rune(text); len(runes) > summarySnippetRunes {
			text = string(runes[:summarySnippetRunes])
			suffix = "…"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s%s", c.UserName, text, suffix))
	}

	out := strings.Join(parts, "；")
	if len(negativeList) > maxItems {
		return out + fmt.Sprintf(" 等共 %d 条。", len(negativeList))
	}
	return out + "。"
}
