package utils

import "golang.org/x/crypto/bcrypt"

// CustoBcrypt é o custo usado ao gerar hashes; os testes reduzem para bcrypt.MinCost.
var CustoBcrypt = bcrypt.DefaultCost

// HashSenha retorna o hash bcrypt da senha em texto
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), CustoBcrypt)
	return string(hash), err
}

// CheckSenha compara hash bcrypt com a senha em texto e retorna true se bater
func CheckSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
