package catalog

const (
	technicianAvatar = "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&dpr=2"
	beforePhoto      = "https://images.pexels.com/photos/1396122/pexels-photo-1396122.jpeg?auto=compress&cs=tinysrgb&w=400&h=300&dpr=2"
	afterPhoto       = "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg?auto=compress&cs=tinysrgb&w=400&h=300&dpr=2"
)

func technician() *Person {
	return &Person{
		Name:   "Mike Johnson",
		Role:   "Senior Technician",
		Avatar: technicianAvatar,
		Rating: 4.9,
	}
}

// Default returns the built-in five-stage home-service timeline.
func Default() Catalog {
	c, err := New([]Stage{
		{
			ID:       1,
			Title:    "Service Request Received",
			Subtitle: "We've got your request!",
			ChecklistItems: []string{
				"Service details received",
				"Location confirmed",
				"Priority level assigned",
				"Initial assessment complete",
			},
			CustomerExpectation: "Your service request has been logged and our team is reviewing the details. You'll receive confirmation within 15 minutes.",
		},
		{
			ID:             2,
			Title:          "Technician Assigned",
			Subtitle:       "Meet your service professional",
			EstimatedTime:  "12:00-12:30 PM",
			AssignedPerson: technician(),
			ChecklistItems: []string{
				"Best technician selected",
				"Tools and equipment prepared",
				"Route optimized",
				"Customer notification sent",
			},
			CustomerExpectation: "Your assigned technician is preparing for the visit. They'll call you 15 minutes before arrival to confirm timing.",
		},
		{
			ID:             3,
			Title:          "On The Way",
			Subtitle:       "Technician heading to your location",
			EstimatedTime:  "Arriving in 15-20 min",
			AssignedPerson: technician(),
			ChecklistItems: []string{
				"Departed from previous location",
				"GPS tracking active",
				"All tools loaded",
				"Customer contact confirmed",
			},
			CustomerExpectation: "Your technician is en route and will arrive within the estimated time window. You can track their progress in real-time.",
		},
		{
			ID:                 4,
			Title:              "Service In Progress",
			Subtitle:           "Work is being performed",
			EstimatedTime:      "45-60 min duration",
			CelebrationMessage: "🎉 Hurray! Today is the day your service gets completed!",
			AssignedPerson:     technician(),
			ChecklistItems: []string{
				"Technician arrived on-site",
				"Initial inspection completed",
				"Work in progress",
				"Quality checks ongoing",
			},
			CustomerExpectation: "Your technician is now working on your service. They'll keep you informed of progress and any findings during the work.",
		},
		{
			ID:                 5,
			Title:              "Service Complete",
			Subtitle:           "All done! Service completed successfully",
			CelebrationMessage: "🎉 Congratulations! Your service has been completed successfully!",
			AssignedPerson:     technician(),
			ChecklistItems: []string{
				"Service work completed",
				"Quality inspection passed",
				"Area cleaned up",
				"Customer walkthrough done",
			},
			CustomerExpectation: "Your service is complete! You'll receive a summary report and can provide feedback about your experience.",
			CompletionImages: &CompletionImages{
				Before: beforePhoto,
				After:  afterPhoto,
			},
		},
	})
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}
