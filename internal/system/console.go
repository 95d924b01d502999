package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterGraphicsConsole hides the console cursor and switches to KD_GRAPHICS.
// The returned function undoes both. Failures are logged, never fatal.
func EnterGraphicsConsole(l logger) (restore func()) {
	logResult(l, SetGraphicsMode(), "KD_GRAPHICS set", "KD_GRAPHICS failed")
	logResult(l, HideCursor(), "cursor hidden", "hide cursor failed")
	return func() {
		logResult(l, ShowCursor(), "cursor shown", "show cursor failed")
		logResult(l, RestoreTextMode(), "KD_TEXT set", "KD_TEXT failed")
	}
}

func logResult(l logger, err error, ok, failed string) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
		return
	}
	l.Infof("tty", "%s", ok)
}
