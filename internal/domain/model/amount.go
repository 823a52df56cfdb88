package model

import (
	"strconv"
	"strings"
)

// Amount は金額。
// バックエンドやlocalStorage由来のJSONでは数値にも文字列にもなるため、
// どちらも受ける。解釈できない値は0として扱う。
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	s = strings.Trim(s, `"`)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}

	*a = Amount(f)
	return nil
}

// 小数2桁の文字列（"25.00" 形式）
func (a Amount) Fixed2() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}
