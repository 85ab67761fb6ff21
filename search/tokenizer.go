// Package search 负责文章的派生检索表示：把 (title, summary) 规范化为词干序列，
// 并把查询文本按同样的规则切分，保证写入侧与查询侧使用一致的分词。
package search

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Tokens 将文本规范化为去重后的词干列表，保持首次出现的顺序。
// 规则：转小写，按非字母/数字切分，去掉英文停用词，Snowball 英文词干化。
func Tokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if english.IsStopWord(field) {
			continue
		}
		stem := english.Stem(field, false)
		if stem == "" {
			continue
		}
		if _, ok := seen[stem]; ok {
			continue
		}
		seen[stem] = struct{}{}
		tokens = append(tokens, stem)
	}
	return tokens
}

// Index 生成写入 search_tokens 列的值。
// 词干之间以单个空格分隔，首尾各补一个空格，使 "% tok %" 的 LIKE 匹配只命中完整词干。
// 没有任何词干时返回空串。
func Index(title, summary string) string {
	tokens := Tokens(title + " " + summary)
	if len(tokens) == 0 {
		return ""
	}
	return " " + strings.Join(tokens, " ") + " "
}

// QueryTerms 把用户查询切分为需要全部命中的词干。
func QueryTerms(query string) []string {
	return Tokens(query)
}

// LikePattern 返回单个词干在 search_tokens 列上的匹配模式。
func LikePattern(term string) string {
	return "% " + term + " %"
}
