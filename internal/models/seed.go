package models

// SeedExercise is one row of the built-in exercise catalog.
type SeedExercise struct {
	Name        string
	MuscleGroup MuscleGroup
	Category    ExerciseCategory
}

// ExerciseSeed is the fixed catalog inserted on first launch. Never reseeded
// once any exercise row exists.
var ExerciseSeed = []SeedExercise{
	// Chest
	{"Bench Press", MuscleChest, CategoryCompound},
	{"Incline Dumbbell Press", MuscleChest, CategoryCompound},
	{"Dumbbell Fly", MuscleChest, CategoryIsolation},
	{"Cable Crossover", MuscleChest, CategoryIsolation},
	{"Push-Up", MuscleChest, CategoryBodyweight},

	// Back
	{"Deadlift", MuscleBack, CategoryCompound},
	{"Barbell Row", MuscleBack, CategoryCompound},
	{"Pull-Up", MuscleBack, CategoryBodyweight},
	{"Lat Pulldown", MuscleBack, CategoryCompound},
	{"Seated Cable Row", MuscleBack, CategoryCompound},
	{"Face Pull", MuscleBack, CategoryIsolation},

	// Shoulders
	{"Overhead Press", MuscleShoulders, CategoryCompound},
	{"Dumbbell Lateral Raise", MuscleShoulders, CategoryIsolation},
	{"Front Raise", MuscleShoulders, CategoryIsolation},
	{"Arnold Press", MuscleShoulders, CategoryCompound},
	{"Reverse Fly", MuscleShoulders, CategoryIsolation},

	// Biceps
	{"Barbell Curl", MuscleBiceps, CategoryIsolation},
	{"Dumbbell Curl", MuscleBiceps, CategoryIsolation},
	{"Hammer Curl", MuscleBiceps, CategoryIsolation},
	{"Preacher Curl", MuscleBiceps, CategoryIsolation},

	// Triceps
	{"Tricep Dip", MuscleTriceps, CategoryBodyweight},
	{"Skull Crusher", MuscleTriceps, CategoryIsolation},
	{"Tricep Pushdown", MuscleTriceps, CategoryIsolation},
	{"Overhead Tricep Extension", MuscleTriceps, CategoryIsolation},

	// Legs
	{"Barbell Squat", MuscleLegs, CategoryCompound},
	{"Leg Press", MuscleLegs, CategoryCompound},
	{"Romanian Deadlift", MuscleLegs, CategoryCompound},
	{"Leg Extension", MuscleLegs, CategoryIsolation},
	{"Leg Curl", MuscleLegs, CategoryIsolation},
	{"Calf Raise", MuscleLegs, CategoryIsolation},
	{"Bulgarian Split Squat", MuscleLegs, CategoryCompound},

	// Glutes
	{"Hip Thrust", MuscleGlutes, CategoryCompound},
	{"Glute Bridge", MuscleGlutes, CategoryBodyweight},
	{"Cable Kickback", MuscleGlutes, CategoryIsolation},

	// Core
	{"Plank", MuscleCore, CategoryBodyweight},
	{"Hanging Leg Raise", MuscleCore, CategoryBodyweight},
	{"Cable Crunch", MuscleCore, CategoryIsolation},
	{"Ab Wheel Rollout", MuscleCore, CategoryBodyweight},
	{"Russian Twist", MuscleCore, CategoryBodyweight},

	// Forearms
	{"Wrist Curl", MuscleForearms, CategoryIsolation},
	{"Farmer's Walk", MuscleForearms, CategoryCompound},

	// Full body
	{"Burpee", MuscleFullBody, CategoryCardio},
}
