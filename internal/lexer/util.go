package lexer

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

// IsIdentText reports whether s is a syntactically valid identifier.
// Данные из строковых констант могут содержать что угодно; перед разрешением
// имени нужна эта проверка.
func IsIdentText(s string) bool {
	if s == "" {
		return false
	}
	if !isIdentStartByte(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentContinueByte(s[i]) {
			return false
		}
	}
	return true
}
