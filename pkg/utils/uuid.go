package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// tamanho dos identificadores de registros semanais
const recordIDLength = 12

// GenerateID gera o identificador de um novo registro
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, recordIDLength)
}
