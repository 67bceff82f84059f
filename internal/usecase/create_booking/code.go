package create_booking

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// RandomCodeGenerator генератор кодов на crypto/rand для production
type RandomCodeGenerator struct{}

// Generate возвращает новый публичный код бронирования: "PFM-" + 6 hex символов
// в верхнем регистре. Пространство кодов 16^6, вероятность коллизии ничтожна;
// редкая коллизия обрабатывается повторной генерацией на стороне usecase.
func (g *RandomCodeGenerator) Generate() string {
	buf := make([]byte, domain.CodeRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибок
		panic("create_booking: crypto/rand failed: " + err.Error())
	}
	return domain.CodePrefix + strings.ToUpper(hex.EncodeToString(buf))
}
