package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BloodPressureInput is the feature vector sent to the external BP model
type BloodPressureInput struct {
	Age               int     `bson:"age" json:"age"`
	SystolicPressure  float64 `bson:"systolic_pressure" json:"systolic_pressure"`
	DiastolicPressure float64 `bson:"diastolic_pressure" json:"diastolic_pressure"`
}

// BloodPressurePrediction persists one result from the external BP model
type BloodPressurePrediction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Input     BloodPressureInput `bson:"input" json:"input"`
	Result    string             `bson:"result" json:"result"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// DiabetesInput is the feature vector sent to the external diabetes model
type DiabetesInput struct {
	Pregnancies      int     `bson:"pregnancies" json:"pregnancies"`
	Glucose          float64 `bson:"glucose" json:"glucose"`
	BloodPressure    float64 `bson:"blood_pressure" json:"blood_pressure"`
	SkinThickness    float64 `bson:"skin_thickness" json:"skin_thickness"`
	Insulin          float64 `bson:"insulin" json:"insulin"`
	BMI              float64 `bson:"bmi" json:"bmi"`
	DiabetesPedigree float64 `bson:"diabetes_pedigree" json:"diabetes_pedigree"`
	Age              int     `bson:"age" json:"age"`
}

// DiabetesPrediction persists one result from the external diabetes model
type DiabetesPrediction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Input     DiabetesInput      `bson:"input" json:"input"`
	Result    string             `bson:"result" json:"result"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
