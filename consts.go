package logex

const (
	// EnvConfig names the environment variable that pins the config file path.
	// When set, the file must exist; discovery fails otherwise.
	EnvConfig = "PYLOGEX_CONFIG"

	// ConfigFilename is the file name searched for during discovery.
	ConfigFilename = "logging.yaml"

	// DefaultHomeDirName is the per-user config directory under $HOME.
	DefaultHomeDirName = ".logex"

	// MaxWalkUpLevels bounds the parent-directory search during discovery.
	MaxWalkUpLevels = 5

	// MaxStackFrames bounds stack capture on library errors.
	MaxStackFrames = 20

	emptyString = ""
)

const (
	errMsgNilService    = "Logging service is nil."
	errMsgNilAdapter    = "Dispatch adapter is nil."
	errMsgConfigInvalid = "Logger configuration is invalid."
	errMsgFlushTimeout  = "Flush did not drain within the shutdown timeout."
)
