package model

// Action names a user-triggerable operation of the session
type Action string

const (
	ActionSubmitExtract Action = "submitExtract"
	ActionToggleMode    Action = "toggleMode"
	ActionSetMode       Action = "setMode"
	ActionDownloadZip   Action = "downloadZip"
	ActionConvertAudio  Action = "convertAudio"
	ActionResetSession  Action = "resetSession"
	ActionPaste         Action = "paste"
)
