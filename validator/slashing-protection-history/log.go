package history

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "slashing-protection-history")
