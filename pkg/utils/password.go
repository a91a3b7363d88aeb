package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost 固定的 bcrypt work factor
const PasswordCost = 10

// MaxPasswordBytes bcrypt 的输入上限按字节计，不是字符数
const MaxPasswordBytes = 72

func PasswordFits(pw string) bool { return len(pw) <= MaxPasswordBytes }

// HashPassword 每次调用随机盐；超过 72 字节的输入由 bcrypt 返回错误
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 常量时间比较；hash 格式错误时返回 false
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
