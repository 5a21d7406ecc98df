package subjects

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClasses(t *testing.T) {
	require.Equal(t, []string{"9", "10", "11", "12"}, Classes())
}

func TestForClass(t *testing.T) {
	require.Equal(t, []string{"English", "Hindi", "Maths", "Science", "Social Science"}, ForClass("10"))
	require.Contains(t, ForClass("11"), "Physics")
	require.NotContains(t, ForClass("11"), "Social Science")
	require.Empty(t, ForClass("6"), "upload-only classes are not browsable")
}

func TestAllowed(t *testing.T) {
	require.True(t, Allowed("9", "Science"))
	require.False(t, Allowed("11", "Science"), "senior classes split Science into subjects")
	require.True(t, Allowed("12", ""))
	require.False(t, Allowed("", "Maths"))
}

func TestNormalizeClearsStaleSubject(t *testing.T) {
	class, subject := Normalize("11", "Science")
	require.Equal(t, "11", class)
	require.Empty(t, subject, "switching to class 11 must clear a class-10 subject")

	class, subject = Normalize("10", "Science")
	require.Equal(t, "10", class)
	require.Equal(t, "Science", subject)

	class, subject = Normalize("7", "Maths")
	require.Empty(t, class)
	require.Empty(t, subject)
}
