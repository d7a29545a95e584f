// Package controllers provides corrective controllers for a two-channel
// differential drive.
//
// Controllers implement the [drive.Controller] interface, turning a sensed
// reading pair into one speed command per channel:
//
//   - [Differential]: bounded proportional correction (left - right error)
//   - [PID]: PID correction with anti-windup on the integral term
//   - [Fixed]: open-loop constant command
//   - [Guard]: obstacle-stop decorator over any controller
//
// # Usage
//
//	ctrl := controllers.NewDifferential(120, 0.15, 60, -255, 255)
//	loop := drive.New(robot, robot, ctrl)
//	// Controller.Compute is called each cycle
//
// Controllers implementing [drive.Tunable] support live tuning.
package controllers
