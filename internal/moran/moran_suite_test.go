package moran

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMoranProperties(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Moran Process Suite")
}
