package controllers_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skarn/linectl/internal/controllers"
	"github.com/skarn/linectl/internal/drive"
)

var _ = Describe("Differential bounds", func() {
	var ctrl *controllers.Differential

	BeforeEach(func() {
		ctrl = controllers.NewDifferential(120, 0.15, 60, -255, 255)
	})

	It("keeps both channels inside the output range for any reading", func() {
		for left := 0; left <= 1023; left += 89 {
			for right := 0; right <= 1023; right += 89 {
				cmd := ctrl.Compute(drive.SensorPair{Left: left, Right: right}, 0)
				Expect(cmd.Left).To(And(BeNumerically(">=", -255), BeNumerically("<=", 255)))
				Expect(cmd.Right).To(And(BeNumerically(">=", -255), BeNumerically("<=", 255)))
			}
		}
	})

	It("never applies more than the correction limit", func() {
		for left := 0; left <= 1023; left += 61 {
			for right := 0; right <= 1023; right += 61 {
				cmd := ctrl.Compute(drive.SensorPair{Left: left, Right: right}, 0)
				Expect(cmd.Left - 120).To(And(BeNumerically(">=", -60), BeNumerically("<=", 60)))
				Expect(cmd.Right - 120).To(And(BeNumerically(">=", -60), BeNumerically("<=", 60)))
			}
		}
	})

	It("applies the correction oppositely to the two channels", func() {
		cmd := ctrl.Compute(drive.SensorPair{Left: 700, Right: 500}, 0)
		Expect(cmd.Left + cmd.Right).To(Equal(240))
	})

	It("returns base speed on both channels when the error is zero", func() {
		cmd := ctrl.Compute(drive.SensorPair{Left: 480, Right: 480}, 0)
		Expect(cmd.Left).To(Equal(120))
		Expect(cmd.Right).To(Equal(120))
	})
})

var _ = Describe("PID bounds", func() {
	It("keeps both channels inside the output range across a run", func() {
		ctrl := controllers.NewPID(120, 0.4, 0.1, 0.2, 60, -255, 255)

		t := 0.0
		for i := 0; i < 500; i++ {
			left := (i * 37) % 1024
			right := (i * 53) % 1024
			cmd := ctrl.Compute(drive.SensorPair{Left: left, Right: right}, t)
			Expect(cmd.Left).To(And(BeNumerically(">=", -255), BeNumerically("<=", 255)))
			Expect(cmd.Right).To(And(BeNumerically(">=", -255), BeNumerically("<=", 255)))
			t += 0.02
		}
	})
})
