package series_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSeriesSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Series Suite")
}
