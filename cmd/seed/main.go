package main

import (
	"context"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/config"
	"go-dutyleave/internal/database"
	"go-dutyleave/internal/features/faculty"
	"go-dutyleave/internal/features/student"
	"go-dutyleave/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed loads demo students and faculty for local development.
func Seed(
	lc fx.Lifecycle,
	studentService student.StudentService,
	facultyService faculty.FacultyService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				if existing, err := studentService.GetByEmail(ctx, "rahul@institute.edu"); err == nil && existing != nil {
					logger.Info("Database already seeded, skipping")
					return
				}

				logger.Info("Seeding database...")

				students := []student.ImportRow{
					{Name: "Rahul Sharma", RollNo: "CS21B001", Email: "rahul@institute.edu", Password: "password123", Department: "Computer Science", Division: "A", AttendancePercentage: 82},
					{Name: "Priya Patel", RollNo: "EC21B015", Email: "priya@institute.edu", Password: "password123", Department: "Electronics", Division: "B", AttendancePercentage: 78},
					{Name: "Amit Kumar", RollNo: "ME21B042", Email: "amit@institute.edu", Password: "password123", Department: "Mechanical", Division: "A", AttendancePercentage: 88},
					{Name: "Sneha Reddy", RollNo: "CS21B028", Email: "sneha@institute.edu", Password: "password123", Department: "Computer Science", Division: "A", AttendancePercentage: 91},
					// Below the 75% cutoff, not eligible to apply
					{Name: "Vikram Shah", RollNo: "EC21B033", Email: "vikram@institute.edu", Password: "password123", Department: "Electronics", Division: "B", AttendancePercentage: 65},
				}
				for _, row := range students {
					if _, err := studentService.Register(ctx, row); err != nil {
						logger.Warn("failed to seed student", zap.String("email", row.Email), zap.Error(err))
					}
				}

				facultyMembers := []struct {
					f        faculty.Faculty
					password string
				}{
					{faculty.Faculty{Name: "Dr. Anjali Desai", Email: "anjali.cc@institute.edu", Role: common_models.StageCC, Department: "Computer Science"}, "faculty123"},
					{faculty.Faculty{Name: "Prof. Rajesh Mehta", Email: "rajesh.hod@institute.edu", Role: common_models.StageHOD, Department: "Computer Science"}, "faculty123"},
					{faculty.Faculty{Name: "Dr. Sunita Iyer", Email: "sunita.vp@institute.edu", Role: common_models.StageVP, Department: "Administration"}, "faculty123"},
					{faculty.Faculty{Name: "Dr. Kiran Kulkarni", Email: "kiran.cc@institute.edu", Role: common_models.StageCC, Department: "Electronics"}, "faculty123"},
					{faculty.Faculty{Name: "Prof. Anil Joshi", Email: "anil.hod@institute.edu", Role: common_models.StageHOD, Department: "Electronics"}, "faculty123"},
				}
				for _, fm := range facultyMembers {
					f := fm.f
					if err := facultyService.Register(ctx, &f, fm.password); err != nil {
						logger.Warn("failed to seed faculty", zap.String("email", f.Email), zap.Error(err))
					}
				}

				logger.Info("Database seeded successfully",
					zap.Int("students", len(students)),
					zap.Int("faculty", len(facultyMembers)))
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,

			student.NewStudentRepository,
			faculty.NewFacultyRepository,

			student.NewStudentService,
			faculty.NewFacultyService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
