package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// matching t.Chdir from newer Go releases.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestInit(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, Init("warning"))
	require.Equal(t, logrus.WarnLevel, Logger.GetLevel())

	logFile := filepath.Join("logs", "finance_app_"+time.Now().Format("02_01_2006")+".log")
	Logger.Warn("startup check")

	info, err := os.Stat(logFile)
	require.NoError(t, err)
	require.False(t, info.IsDir())
}

func TestInitDefaultLevel(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, Init("chatty"))
	require.Equal(t, logrus.InfoLevel, Logger.GetLevel())
}
