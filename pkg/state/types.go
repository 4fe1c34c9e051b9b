package state

// Mode selects which screen the terminal renders.
type Mode string

const (
	ModeIdle      Mode = "idle"
	ModeWeather   Mode = "weather"
	ModeSmartHome Mode = "smarthome"
	ModeClock     Mode = "clock"
	ModeText      Mode = "text"
	ModeTimer     Mode = "timer"
	ModeMusic     Mode = "music"
	ModeVibe      Mode = "vibe"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeIdle, ModeWeather, ModeSmartHome, ModeClock, ModeText, ModeTimer, ModeMusic, ModeVibe:
		return true
	}
	return false
}

// Emotion is the face expression shown by the terminal.
type Emotion string

const (
	EmotionNormal   Emotion = "normal"
	EmotionBlink    Emotion = "blink"
	EmotionWink     Emotion = "wink"
	EmotionYawn     Emotion = "yawn"
	EmotionDizzy    Emotion = "dizzy"
	EmotionThinking Emotion = "thinking"
	EmotionTalking  Emotion = "talking"
)

// Valid reports whether e is one of the known emotions.
func (e Emotion) Valid() bool {
	switch e {
	case EmotionNormal, EmotionBlink, EmotionWink, EmotionYawn, EmotionDizzy, EmotionThinking, EmotionTalking:
		return true
	}
	return false
}

// Transient reports whether e must revert to normal shortly after being set.
func (e Emotion) Transient() bool {
	return e == EmotionWink || e == EmotionYawn || e == EmotionDizzy
}

// Weather condition values understood by the terminal.
const (
	ConditionClear  = "clear"
	ConditionClouds = "clouds"
	ConditionRain   = "rain"
	ConditionSnow   = "snow"
	ConditionStorm  = "storm"
	ConditionFog    = "fog"
)

// ForecastEntry is one slot of the short-range forecast.
type ForecastEntry struct {
	Time      string `json:"time"`
	Temp      string `json:"temp"`
	Condition string `json:"condition"`
}

// Weather is the current weather block.
type Weather struct {
	Temp      string          `json:"temp"`
	Condition string          `json:"condition"`
	City      string          `json:"city"`
	Forecast  []ForecastEntry `json:"forecast,omitempty"`
}

// DeviceSummary describes one smart-home device as shown on the terminal.
type DeviceSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Capability string `json:"capability"`
}

// SmartHome is either a single device status (from a HOME command or the
// admin console) or a device list (after a device refresh).
type SmartHome struct {
	Device  string          `json:"device,omitempty"`
	Status  string          `json:"status,omitempty"`
	Devices []DeviceSummary `json:"devices,omitempty"`
}

// Timer holds the countdown in seconds. 0 <= Left <= Total.
type Timer struct {
	Total int `json:"total"`
	Left  int `json:"left"`
}

// Music is the now-playing block.
type Music struct {
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	ProgressPercent int    `json:"progressPercent"`
	StreamURL       string `json:"streamUrl"`
}

// Vibe is the photo-frame position (1-based).
type Vibe struct {
	CurrentImage int `json:"currentImage"`
}

// SmartThings mirrors the last fetched device list.
type SmartThings struct {
	Devices []DeviceSummary `json:"devices"`
}

// Field identifies a top-level field of the snapshot. Fields are bit flags
// so a set of them can be expressed as one value.
type Field uint16

const (
	FieldMode Field = 1 << iota
	FieldEmotion
	FieldWeather
	FieldSmartHome
	FieldAIText
	FieldTimer
	FieldMusic
	FieldVibe
	FieldDeviceLocked
	FieldSmartThings

	fieldCount = iota
)

// Snapshot is an immutable view of the global display state. Values
// returned by the Store must not be modified; slices are shared between
// snapshots.
type Snapshot struct {
	Mode         Mode        `json:"mode"`
	Emotion      Emotion     `json:"emotion"`
	Weather      Weather     `json:"weather"`
	SmartHome    SmartHome   `json:"smartHome"`
	AIText       string      `json:"aiText"`
	Timer        Timer       `json:"timer"`
	Music        Music       `json:"music"`
	Vibe         Vibe        `json:"vibe"`
	DeviceLocked bool        `json:"deviceLocked"`
	SmartThings  SmartThings `json:"smartThings"`
	LastUpdate   int64       `json:"lastUpdate"`

	version uint64
	gens    [fieldCount]uint64
}

// Version is the number of merges the store has completed when this
// snapshot was published.
func (s Snapshot) Version() uint64 {
	return s.version
}

// Stamp captures the write generations of the given fields as seen by this
// snapshot. A stamp is later passed to Store.UpdateIf to detect writes that
// happened in between.
func (s Snapshot) Stamp(fields Field) Stamp {
	return Stamp{fields: fields, gens: s.gens}
}

// Stamp is a set of field generations.
type Stamp struct {
	fields Field
	gens   [fieldCount]uint64
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Mode         *Mode
	Emotion      *Emotion
	Weather      *Weather
	SmartHome    *SmartHome
	AIText       *string
	Timer        *Timer
	Music        *Music
	Vibe         *Vibe
	DeviceLocked *bool
	SmartThings  *SmartThings
}

// Fields returns the set of fields carried by p.
func (p Patch) Fields() Field {
	var f Field
	if p.Mode != nil {
		f |= FieldMode
	}
	if p.Emotion != nil {
		f |= FieldEmotion
	}
	if p.Weather != nil {
		f |= FieldWeather
	}
	if p.SmartHome != nil {
		f |= FieldSmartHome
	}
	if p.AIText != nil {
		f |= FieldAIText
	}
	if p.Timer != nil {
		f |= FieldTimer
	}
	if p.Music != nil {
		f |= FieldMusic
	}
	if p.Vibe != nil {
		f |= FieldVibe
	}
	if p.DeviceLocked != nil {
		f |= FieldDeviceLocked
	}
	if p.SmartThings != nil {
		f |= FieldSmartThings
	}
	return f
}

// Ptr returns a pointer to v. It keeps patch literals short.
func Ptr[T any](v T) *T {
	return &v
}

// Default returns the state the server starts with.
func Default() Snapshot {
	return Snapshot{
		Mode:    ModeIdle,
		Emotion: EmotionNormal,
		Weather: Weather{Temp: "-12", Condition: ConditionSnow, City: "Zerenda"},
		SmartHome: SmartHome{
			Device: "Лампа Спальня",
			Status: "off",
		},
		AIText:      "Я обновился! Теперь у меня старое лицо, но новые возможности.",
		Vibe:        Vibe{CurrentImage: 1},
		SmartThings: SmartThings{Devices: []DeviceSummary{}},
	}
}
