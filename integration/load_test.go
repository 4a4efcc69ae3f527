package integration

import (
	"testing"

	"github.com/nspcc-dev/alephium-go/pkg/contract"
	"github.com/stretchr/testify/require"
)

const artifactDir = "../artifacts"

func TestLoadFromJSON(t *testing.T) {
	for _, name := range []string{"add", "sub", "greeter"} {
		c, err := contract.FromFile(artifactDir + "/" + name + ".ral.json")
		require.NoError(t, err, name)
		require.NotEmpty(t, c.CodeHash(), name)
	}
	for _, name := range []string{"main", "greeter_main"} {
		_, err := contract.ScriptFromFile(artifactDir + "/" + name + ".ral.json")
		require.NoError(t, err, name)
	}
}
