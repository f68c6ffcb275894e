package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, used by index setup. Repositories bind their own
// collections; this list is the full set the server touches.
const (
	CollUsers           = "users"
	CollPatients        = "patients"
	CollDoctors         = "doctors"
	CollHospitals       = "hospitals"
	CollDeviceReadings  = "device_readings"
	CollCriticalAlerts  = "critical_alerts"
	CollDietPlans       = "diet_plans"
	CollAgentActivities = "agent_activities"
	CollDailyProgress   = "daily_progress"
	CollPatientWallets  = "patient_wallets"
)

// Connect dials MongoDB and verifies the connection with a ping before
// returning the client.
func Connect(ctx context.Context, url string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, nil
}
