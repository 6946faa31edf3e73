//go:build arenadebug

package arena

const debugAssertions = true
