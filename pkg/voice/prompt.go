package voice

import (
	"encoding/json"
	"strings"

	"github.com/urmzd/umaai/pkg/state"
)

// PromptBuilder renders the instruction sent along with the audio.
type PromptBuilder func(snap state.Snapshot) string

const persona = `Ты UmaAI, ассистент, живущий в старом Android-телефоне.
Характер: саркастичный киберпанк-минималист, отвечаешь коротко и по делу.

Правила:
1. Не больше одного-двух предложений.
2. Без эмодзи, старый экран их не покажет.
3. Если просят что-то сделать, сделай это командой из списка ниже.
4. Команды пишутся в фигурных скобках в конце ответа. Пользователь их не видит.

Команды:
- Таймер: {TIMER: секунды}. Пример: "Засекаю две минуты." {TIMER: 120}
- Ночные часы: {CLOCK}
- Погода: {WEATHER}
- Умный дом: {HOME: устройство on|off}. Пример: "Включаю свет." {HOME: lamp on}
- Музыка: {MUSIC: трек | исполнитель}, исполнитель обязателен
- Фоторамка, фото, вайб: {VIBE}
- Возврат в обычный режим: {IDLE}

Если команда не нужна, просто ответь текстом.
Распознай речь в аудио и ответь по этим правилам.`

// DefaultPrompt lists the persona, the command grammar, the weather city and
// the known smart-home devices.
func DefaultPrompt(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(persona)

	if snap.Weather.City != "" {
		b.WriteString("\nГород для погоды: ")
		b.WriteString(snap.Weather.City)
		b.WriteString(".")
	}

	devices := snap.SmartThings.Devices
	if devices == nil {
		devices = []state.DeviceSummary{}
	}
	list, _ := json.Marshal(devices)
	b.WriteString("\nДоступные устройства: ")
	b.Write(list)
	b.WriteString(".\nЧтобы включить или выключить устройство, используй {HOME: id on} или {HOME: id off}, где id это id устройства.")
	return b.String()
}
