// Package fixture holds the fixed sample records the CRM starts with.
package fixture

import (
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type Dataset struct {
	Leads    []entity.Lead
	Deals    []entity.Deal
	Products []entity.Product
	Invoices []entity.Invoice
}

// LoadInitialData returns a fresh copy of the seed records on every call.
// The records are stored as-is; in particular INV-002 keeps its recorded
// amount even though its lines add up to less.
func LoadInitialData() Dataset {
	return Dataset{
		Leads:    leads(),
		Deals:    deals(),
		Products: products(),
		Invoices: invoices(),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func leads() []entity.Lead {
	return []entity.Lead{
		{
			ID:           "1",
			Name:         "Sarah Johnson",
			Email:        "sarah@example.com",
			Phone:        "+1-555-0123",
			BusinessType: "Restaurant",
			Segment:      entity.SegmentInterestedWebsite,
			Source:       entity.SourceFacebook,
			Status:       entity.LeadStatusQualified,
			CreatedAt:    day(2024, time.December, 1),
			LastContact:  day(2024, time.December, 15),
			Notes:        "Needs a modern website with online ordering system",
			Interactions: []entity.Interaction{},
		},
		{
			ID:           "2",
			Name:         "Mike Chen",
			Email:        "mike@techstartup.com",
			Phone:        "+1-555-0124",
			BusinessType: "Tech Startup",
			Segment:      entity.SegmentInterestedWebsite,
			Source:       entity.SourceGoogle,
			Status:       entity.LeadStatusContacted,
			CreatedAt:    day(2024, time.December, 10),
			LastContact:  day(2024, time.December, 12),
			Notes:        "Looking for professional corporate website",
			Interactions: []entity.Interaction{},
		},
		{
			ID:           "3",
			Name:         "Emma Wilson",
			Email:        "emma@lawfirm.com",
			Phone:        "+1-555-0125",
			BusinessType: "Law Firm",
			Segment:      entity.SegmentDomainOnly,
			Source:       entity.SourceReferral,
			Status:       entity.LeadStatusNew,
			CreatedAt:    day(2024, time.December, 18),
			LastContact:  day(2024, time.December, 18),
			Notes:        "Just needs domain registration for now",
			Interactions: []entity.Interaction{},
		},
		{
			ID:           "4",
			Name:         "David Rodriguez",
			Email:        "david@ecommerce.com",
			Phone:        "+1-555-0126",
			BusinessType: "E-commerce",
			Segment:      entity.SegmentInterestedWebsite,
			Source:       entity.SourceInstagram,
			Status:       entity.LeadStatusConverted,
			CreatedAt:    day(2024, time.November, 15),
			LastContact:  day(2024, time.December, 1),
			Notes:        "Successfully launched online store",
			Interactions: []entity.Interaction{},
		},
		{
			ID:           "5",
			Name:         "Lisa Thompson",
			Email:        "lisa@consulting.com",
			Phone:        "+1-555-0127",
			BusinessType: "Consulting",
			Segment:      entity.SegmentEmailPlans,
			Source:       entity.SourceWebsite,
			Status:       entity.LeadStatusQualified,
			CreatedAt:    day(2024, time.December, 5),
			LastContact:  day(2024, time.December, 14),
			Notes:        "Interested in professional email setup",
			Interactions: []entity.Interaction{},
		},
	}
}

func products() []entity.Product {
	return []entity.Product{
		{
			ID:          "1",
			Name:        "Basic Website Package",
			Category:    entity.CategoryWebsite,
			Price:       entity.Money(1500),
			Description: "Professional 5-page website with modern design",
			Features:    []string{"Responsive Design", "SEO Optimized", "Contact Form", "1 Year Support", "SSL Certificate"},
			IsActive:    true,
		},
		{
			ID:          "2",
			Name:        "E-commerce Website",
			Category:    entity.CategoryWebsite,
			Price:       entity.Money(3500),
			Description: "Full-featured online store with payment integration",
			Features:    []string{"Product Catalog", "Shopping Cart", "Payment Gateway", "Inventory Management", "Order Tracking", "Admin Dashboard"},
			IsActive:    true,
		},
		{
			ID:          "3",
			Name:        "Domain Registration",
			Category:    entity.CategoryDomain,
			Price:       entity.Money(15),
			Description: "Annual domain registration (.com, .net, .org)",
			Features:    []string{"1 Year Registration", "DNS Management", "Email Forwarding", "Free Privacy Protection"},
			IsActive:    true,
		},
		{
			ID:          "4",
			Name:        "Professional Email",
			Category:    entity.CategoryEmail,
			Price:       entity.Money(60),
			Description: "Business email hosting with 10GB storage",
			Features:    []string{"10GB Storage", "Custom Domain", "Mobile Sync", "Spam Protection", "24/7 Support"},
			IsActive:    true,
		},
		{
			ID:          "5",
			Name:        "Web Hosting",
			Category:    entity.CategoryHosting,
			Price:       entity.Money(120),
			Description: "Reliable web hosting with 99.9% uptime",
			Features:    []string{"10GB SSD Storage", "Unlimited Bandwidth", "Free SSL", "Daily Backups", "cPanel Access"},
			IsActive:    true,
		},
	}
}

func deals() []entity.Deal {
	return []entity.Deal{
		{
			ID:          "1",
			LeadID:      "1",
			LeadName:    "Sarah Johnson",
			Stage:       entity.StageQuoteSent,
			Value:       entity.Money(2000),
			Products:    []string{"Basic Website Package", "Professional Email"},
			Probability: 75,
			CloseDate:   day(2024, time.December, 30),
			CreatedAt:   day(2024, time.December, 15),
			Notes:       "Quote sent for restaurant website with online ordering",
		},
		{
			ID:          "2",
			LeadID:      "2",
			LeadName:    "Mike Chen",
			Stage:       entity.StageContacted,
			Value:       entity.Money(1500),
			Products:    []string{"Basic Website Package"},
			Probability: 50,
			CloseDate:   day(2025, time.January, 15),
			CreatedAt:   day(2024, time.December, 10),
			Notes:       "Initial contact made, needs to review portfolio",
		},
		{
			ID:          "3",
			LeadID:      "4",
			LeadName:    "David Rodriguez",
			Stage:       entity.StageClosedWon,
			Value:       entity.Money(3620),
			Products:    []string{"E-commerce Website", "Web Hosting"},
			Probability: 100,
			CloseDate:   day(2024, time.December, 1),
			CreatedAt:   day(2024, time.November, 15),
			Notes:       "Successfully delivered e-commerce solution",
		},
		{
			ID:          "4",
			LeadID:      "5",
			LeadName:    "Lisa Thompson",
			Stage:       entity.StageNegotiation,
			Value:       entity.Money(180),
			Products:    []string{"Professional Email", "Domain Registration"},
			Probability: 80,
			CloseDate:   day(2024, time.December, 25),
			CreatedAt:   day(2024, time.December, 12),
			Notes:       "Negotiating email package details",
		},
	}
}

func invoices() []entity.Invoice {
	return []entity.Invoice{
		{
			ID:            "1",
			InvoiceNumber: "INV-001",
			LeadID:        "4",
			LeadName:      "David Rodriguez",
			Amount:        entity.Money(3620),
			Status:        entity.InvoicePaid,
			DueDate:       day(2024, time.December, 15),
			CreatedAt:     day(2024, time.December, 1),
			Items: []entity.InvoiceItem{
				{ID: "1", ProductID: "2", ProductName: "E-commerce Website", Quantity: 1, Price: entity.Money(3500), Total: entity.Money(3500)},
				{ID: "2", ProductID: "5", ProductName: "Web Hosting", Quantity: 1, Price: entity.Money(120), Total: entity.Money(120)},
			},
		},
		{
			ID:            "2",
			InvoiceNumber: "INV-002",
			LeadID:        "1",
			LeadName:      "Sarah Johnson",
			Amount:        entity.Money(2060),
			Status:        entity.InvoiceSent,
			DueDate:       day(2025, time.January, 5),
			CreatedAt:     day(2024, time.December, 20),
			Items: []entity.InvoiceItem{
				{ID: "3", ProductID: "1", ProductName: "Basic Website Package", Quantity: 1, Price: entity.Money(1500), Total: entity.Money(1500)},
				{ID: "4", ProductID: "4", ProductName: "Professional Email", Quantity: 1, Price: entity.Money(60), Total: entity.Money(60)},
			},
		},
	}
}
