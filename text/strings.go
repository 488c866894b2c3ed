package text

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitList splits a comma separated list, trimming each item and dropping empty ones.
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Percent formats a probability in the range 0-1 as a percentage with two decimal places.
func Percent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 2, 64) + "%"
}

func RemoveRedundantWhitespace(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

func JoinList(strs []string) string {
	return joinListWith(strs, " and ")
}

func JoinListOr(strs []string) string {
	return joinListWith(strs, " or ")
}

func joinListWith(strs []string, last string) string {
	var ret string
	for i, s := range strs {
		s = strings.Trim(s, " ,!.?")

		if i != 0 {
			if i == len(strs)-1 {
				ret += last
			} else {
				ret += ", "
			}
		}
		ret += s
	}
	return ret
}

func MaybePluralise(s string, quantity int) string {
	if quantity != 1 {
		return s + "s"
	}
	return s
}

func CountOf(n int, singular string) string {
	return fmt.Sprintf("%d %s", n, MaybePluralise(singular, n))
}
