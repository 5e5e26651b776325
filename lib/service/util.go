package service

import (
	"github.com/labstack/gommon/random"
)

func randomAlphaNum(length uint8) string {
	return random.String(length, alphaNumBytes)
}
