package tools

import "golang.org/x/crypto/bcrypt"

var passwordCost = bcrypt.DefaultCost

// PasswordEncrypt 使用 bcrypt 加密密码
func PasswordEncrypt(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	PanicOnErr(err)
	return string(hash)
}

// PasswordCompare 校验明文密码与哈希是否匹配
func PasswordCompare(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
