package config

// Dotted key paths of the YAML document, used in validation errors.
const (
	delimiter = "."

	KeyLog      = "log"
	KeyLogLevel = KeyLog + delimiter + "level"

	KeyEffects = "effects"

	KeyEffectsLog          = KeyEffects + delimiter + "log"
	KeyEffectsStore        = KeyEffects + delimiter + "store"
	KeyEffectsNotification = KeyEffects + delimiter + "notification"

	keyBufferSize = "buffer_size"
	keyNumWorkers = "num_workers"

	KeySeed = "seed"
)

func bufferSizeKey(prefix string) string { return prefix + delimiter + keyBufferSize }
func numWorkersKey(prefix string) string { return prefix + delimiter + keyNumWorkers }
