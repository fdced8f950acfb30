package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword 每次生成新盐；cost 用默认值，想抗暴力可以在这里调
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

// CheckPassword 密码不对只返回 false，不报错
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
