package quote

// Empty returns a blank quote with one package holding one price group and a
// single blank primary line.
func Empty() Quote {
	g := NewGroup()
	g.LineItems = append(g.LineItems, NewLine(RolePrimary))
	p := NewPackage()
	p.Name = "Package 1"
	p.PriceGroups = append(p.PriceGroups, g)
	return Quote{
		Header:   Header{Addendums: "0"},
		Packages: []Package{p},
	}
}

// Sample returns a worked two-building quote used for demos and as the
// "reset" target of a workspace.
func Sample() Quote {
	primary := func(qty int, mfr, equip, model string, list, dollarUp, multi, freight, mu float64, tag, desc string) LineItem {
		l := NewLine(RolePrimary)
		l.Qty, l.Manufacturer, l.Equipment, l.Model = qty, mfr, equip, model
		l.List, l.DollarUp, l.Multi, l.Freight, l.MU = list, dollarUp, multi, freight, mu
		l.Tag, l.Description = tag, desc
		return l
	}
	supporting := func(of LineItem, qty int, mfr, equip, model string, list, multi, mu float64, category string) LineItem {
		l := NewLine(RoleSupporting)
		l.PrimaryID = of.ID
		l.Qty, l.Manufacturer, l.Equipment, l.Model = qty, mfr, equip, model
		l.List, l.Multi, l.MU = list, multi, mu
		l.Category = category
		return l
	}
	group := func(name string, lines ...LineItem) PriceGroup {
		g := NewGroup()
		g.Name = name
		g.LineItems = lines
		return g
	}

	doas := primary(3, "Aaon", "Rooftop Units", "DOAS", 392296, 0, 0.35, 4000, 1.5, "DOAS-1,2,4",
		"2\" R-13 double wall construction\n460/60/3 voltage\nVariable speed compressors\n"+
			"6-row DX cooling coils\nAir source heat pump\nElectric preheat\nEnergy recovery wheels\n"+
			"Electric post heat with SCR\nDirect drive plenum supply fan with VFD\nPhase & brownout protection\n"+
			"MERV 8 and MERV 13 filters\nWattmaster VCC-X DOAS controls with BACnet IP\n"+
			"Plenum curbs for horizontal discharge/return\nStart-up and first year labor by SVL Service")
	mau := primary(1, "Aaon", "Rooftop Units", "MAU", 167690, 0, 0.35, 1000, 1.5, "MAU-1",
		"100% OA with motorized intake damper\nAir source heat pump operation\nElectric heat with SCR control\n"+
			"Direct drive plenum supply fan with VFD\nWattmaster VCC-X DOAS controls with BACnet IP\n"+
			"Roof curb\nStart-up and first year labor by SVL Service")
	rtu := group("DOAS Units and Make Up Air Unit",
		doas,
		mau,
		supporting(doas, 4, "CDI - Curbs", "Curbs", "", 22500, 1, 1.4, "Vent"),
		supporting(doas, 4, "Check Test Startup", "CTS+1", "", 17060, 1, 1.15, "Misc"),
	)
	rtu.NameLocked = true

	sound := group("Sound Attenuators",
		primary(7, "Vibro-Acoustics", "Sound Attenuators", "", 6600, 10, 1, 0, 1.4, "SA-1-1 thru 3-2",
			"22ga casing, 22ga liner, and mylar film"),
	)
	mylar := NewAddDeduct(AlternateDeduct)
	mylar.Description = "DEDUCT TO REMOVE MYLAR FILM"
	mylar.LineItems[0].Qty = 7
	mylar.LineItems[0].Manufacturer = "Vibro-Acoustics"
	mylar.LineItems[0].Equipment = "Sound Attenuators"
	mylar.LineItems[0].Model = "No Mylar"
	mylar.LineItems[0].List = 1268
	mylar.LineItems[0].MU = 1.4
	sound.AddDeducts = append(sound.AddDeducts, mylar)

	fan := primary(7, "Cook", "Fans", "", 21372, 0, 0.38, 459, 1.4, "", "")
	fan.Notes = "see 460V add in folder"
	fans := group("Fans",
		fan,
		supporting(fan, 2, "Cook", "Misc", "Paint", 2000, 0.38, 1.4, "Misc"),
		supporting(fan, 4, "CDI - Curbs", "Curbs", "", 1000, 1, 1.4, "Vent"),
	)

	grds := group("GRDs and VAV Terminal Units",
		primary(236, "Titus", "GRDs", "", 11742.94, 6.5, 1, 0, 1.4, "",
			"Variety of models and sizes finished standard white."),
		primary(27, "Titus", "VAVs", "DESV", 14430, 6.5, 1, 0, 1.4, "",
			"Empty control enclosure, double wall, fused disconnect, SCR electric reheat coil."),
	)
	grds.NameLocked = true
	heater := primary(1, "Indeeco", "Electric Heaters", "UHIR", 952, 0, 1, 0, 1.35, "EUH-129",
		"2.5kW @ 208/1/60 power, built in thermostat\nWall/Ceiling mounting bracket")
	heaters := group("Electric Wall Heater", heater)
	heaters.NameLocked = true
	dampers := group("Life Safety Dampers",
		primary(2, "Ruskin", "Life Safety Dampers", "DIBD2", 498.08, 7, 1, 0, 1.5, "",
			"UL555 rated vertical curtain style, 1.5-hour rating, integral sleeves."),
	)

	b1 := NewPackage()
	b1.Name = "Office Hub Space - Building 1"
	b1.PriceGroups = []PriceGroup{rtu, sound, fans}
	b2 := NewPackage()
	b2.Name = "Office Space - Building 2"
	b2.PriceGroups = []PriceGroup{grds, heaters, dampers}

	return Quote{
		Header: Header{
			ProjectName:     "Project Skyway - Data Center Office Hub",
			Location:        "Pine Island, MN",
			BidDate:         "2026-01-21",
			QuoteNumber:     "1182950",
			QuoteName:       "Vent Quote",
			Addendums:       "0",
			Date:            "2026-01-21",
			SalesEngineer:   "Tom McCarty",
			ProjectEngineer: "Gareth Nelson",
			Engineer:        "None - TAM",
			Market:          "Data Centers",
			Phase:           "Initial Bid",
			To:              "Mechanical Contractors",
		},
		Packages: []Package{b1, b2},
	}
}
