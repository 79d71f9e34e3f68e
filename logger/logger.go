package logger

import (
	"net"
	"os"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus instance: JSON to stdout, level
// from config, and a logstash hook when an address is given.
func InitLogger(level, logstashAddr string) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if logstashAddr != "" {
		conn, err := net.Dial("tcp", logstashAddr)
		if err != nil {
			logrus.Warnf("Failed to connect to logstash (%s): %v", logstashAddr, err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": "chirp"}))
			logrus.AddHook(hook)
		}
	}

	logrus.Info("Logger initialized")
}
