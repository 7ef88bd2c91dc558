package main

import "baristabox-be/internal/entity"

// The starter knowledge base. datasets/ ships the same records.

var starterBeans = []*entity.Bean{
	{Id: "cb_001", Name: "Ethiopia Yirgacheffe", Origin: "Ethiopia", Type: "Arabica", RoastLevel: 1, Processing: "Washed",
		TastingNotes: "Jasmine, lemon zest and bergamot with a tea-like body.", ExpertTags: []string{"Floral", "Bright", "Fruity"}},
	{Id: "cb_002", Name: "Colombia Supremo", Origin: "Colombia", Type: "Arabica", RoastLevel: 3, Processing: "Washed",
		TastingNotes: "Caramel sweetness, red apple and a smooth nutty finish.", ExpertTags: []string{"Balanced", "Nutty", "Classic"}},
	{Id: "cb_003", Name: "Sumatra Mandheling", Origin: "Indonesia", Type: "Arabica", RoastLevel: 5, Processing: "Wet-Hulled",
		TastingNotes: "Dark chocolate, cedar and earthy spice with a heavy body.", ExpertTags: []string{"Earthy", "Bold", "Chocolatey"}},
	{Id: "cb_004", Name: "Kenya Nyeri AA", Origin: "Kenya", Type: "Arabica", RoastLevel: 2, Processing: "Washed",
		TastingNotes: "Blackcurrant, grapefruit and a bright winey acidity.", ExpertTags: []string{"Fruity", "Bright", "Complex"}},
	{Id: "cb_005", Name: "Brazil Cerrado", Origin: "Brazil", Type: "Arabica", RoastLevel: 4, Processing: "Natural",
		TastingNotes: "Milk chocolate, roasted hazelnut and brown sugar.", ExpertTags: []string{"Chocolatey", "Nutty", "Comforting"}},
	{Id: "cb_006", Name: "Guatemala Antigua", Origin: "Guatemala", Type: "Arabica", RoastLevel: 3, Processing: "Washed",
		TastingNotes: "Cocoa, soft spice and a hint of orange peel.", ExpertTags: []string{"Balanced", "Spicy", "Morning Coffee"}},
	{Id: "cb_007", Name: "Costa Rica Tarrazu Honey", Origin: "Costa Rica", Type: "Arabica", RoastLevel: 2, Processing: "Honey",
		TastingNotes: "Honey, stone fruit and a syrupy body.", ExpertTags: []string{"Fruity", "Balanced", "Morning Coffee"}},
	{Id: "cb_008", Name: "Ethiopia Guji Natural", Origin: "Ethiopia", Type: "Arabica", RoastLevel: 2, Processing: "Natural",
		TastingNotes: "Blueberry jam, strawberry and dark cocoa.", ExpertTags: []string{"Fruity", "Adventurous", "Complex"}},
	{Id: "cb_009", Name: "Vietnam Dak Lak Robusta", Origin: "Vietnam", Type: "Robusta", RoastLevel: 5, Processing: "Natural",
		TastingNotes: "Bittersweet cocoa, roasted grain and a thick crema.", ExpertTags: []string{"Bold", "Earthy", "Classic"}},
	{Id: "cb_010", Name: "Espresso Night Blend", Origin: "Brazil / India", Type: "Arabica/Robusta Blend", RoastLevel: 4, Processing: "Natural",
		TastingNotes: "Dark chocolate, toasted almond and molasses.", ExpertTags: []string{"Bold", "Chocolatey", "Dessert Coffee"}},
}

var starterRecipes = []*entity.Recipe{
	{Id: "br_001", BeanId: "cb_001", BrewMethod: "V60", GrindSize: "Medium-Fine", CoffeeGrams: 15, WaterGrams: 250, WaterTempC: 94,
		TechniqueNotes: "Bloom with 45g for 40 seconds, then pour in slow spirals. Total time 2:45."},
	{Id: "br_002", BeanId: "cb_001", BrewMethod: "AeroPress", GrindSize: "Fine", CoffeeGrams: 17, WaterGrams: 220, WaterTempC: 88,
		TechniqueNotes: "Inverted method, steep for 90 seconds and press gently. Total time 2:00."},
	{Id: "br_003", BeanId: "cb_002", BrewMethod: "French Press", GrindSize: "Coarse", CoffeeGrams: 30, WaterGrams: 500, WaterTempC: 93,
		TechniqueNotes: "Steep for 4:00, break the crust, then plunge slowly."},
	{Id: "br_004", BeanId: "cb_002", BrewMethod: "V60", GrindSize: "Medium", CoffeeGrams: 15, WaterGrams: 250, WaterTempC: 93,
		TechniqueNotes: "Bloom for 30 seconds, pour in three stages. Total time 3:00."},
	{Id: "br_005", BeanId: "cb_003", BrewMethod: "French Press", GrindSize: "Coarse", CoffeeGrams: 32, WaterGrams: 500, WaterTempC: 94,
		TechniqueNotes: "Steep for 4:30, skim the foam and plunge halfway."},
	{Id: "br_006", BeanId: "cb_004", BrewMethod: "Chemex", GrindSize: "Medium-Coarse", CoffeeGrams: 30, WaterGrams: 500, WaterTempC: 95,
		TechniqueNotes: "Bloom with 60g, pour in slow circles. Total time 4:15."},
	{Id: "br_007", BeanId: "cb_005", BrewMethod: "AeroPress", GrindSize: "Medium", CoffeeGrams: 16, WaterGrams: 230, WaterTempC: 90,
		TechniqueNotes: "Standard method, stir 10 times, press at 1:45."},
	{Id: "br_008", BeanId: "cb_006", BrewMethod: "Kalita Wave", GrindSize: "Medium", CoffeeGrams: 20, WaterGrams: 320, WaterTempC: 93,
		TechniqueNotes: "Pulse pour in 50g stages. Total time 3:30."},
	{Id: "br_009", BeanId: "cb_007", BrewMethod: "V60", GrindSize: "Medium-Fine", CoffeeGrams: 16, WaterGrams: 256, WaterTempC: 92,
		TechniqueNotes: "Bloom 40 seconds, one continuous pour. Total time 2:50."},
	{Id: "br_010", BeanId: "cb_008", BrewMethod: "Chemex", GrindSize: "Medium-Coarse", CoffeeGrams: 28, WaterGrams: 450, WaterTempC: 94,
		TechniqueNotes: "Bloom 45 seconds, pour gently to keep the bed flat. Total time 4:00."},
	{Id: "br_011", BeanId: "cb_009", BrewMethod: "French Press", GrindSize: "Coarse", CoffeeGrams: 28, WaterGrams: 450, WaterTempC: 96,
		TechniqueNotes: "Steep for 5:00 and serve over condensed milk if you like."},
	{Id: "br_012", BeanId: "cb_010", BrewMethod: "AeroPress", GrindSize: "Fine", CoffeeGrams: 18, WaterGrams: 200, WaterTempC: 92,
		TechniqueNotes: "Inverted, steep 1:00, press firmly for a concentrated cup."},
}

var starterProblems = []*entity.Problem{
	{
		Key:         "bitter",
		Description: "Coffee tastes harsh, bitter or astringent.",
		Causes: []entity.Cause{
			{Key: "grind_fine", Question: "Is your grind finer than table salt?", Solution: "Coarsen your grind a few steps to slow extraction down."},
			{Key: "water_temp_high", Question: "Are you using water straight off the boil?", Solution: "Let the kettle rest for 30 seconds before pouring."},
			{Key: "brew_time_long", Question: "Is your brew taking much longer than expected?", Solution: "Shorten the brew by pouring faster or grinding coarser."},
			{Key: "dose_high", Question: "Are you using more coffee than the recipe calls for?", Solution: "Weigh your dose and match the recipe ratio."},
		},
	},
	{
		Key:         "sour",
		Description: "Coffee tastes sour, sharp or underdeveloped.",
		Causes: []entity.Cause{
			{Key: "grind_coarse", Question: "Does your grind look like coarse sea salt?", Solution: "Grind finer to increase extraction."},
			{Key: "water_temp_low", Question: "Is your water cooler than it should be?", Solution: "Use water between 90 and 96°C."},
			{Key: "brew_time_short", Question: "Is your brew finishing faster than expected?", Solution: "Slow your pour or grind finer to extend the brew."},
		},
	},
	{
		Key:         "weak",
		Description: "Coffee tastes thin or watery.",
		Causes: []entity.Cause{
			{Key: "ratio_low", Question: "Are you using less than 15 grams of coffee per 250ml?", Solution: "Increase the dose to around a 1:16 ratio."},
			{Key: "grind_coarse", Question: "Is your grind much coarser than the recipe suggests?", Solution: "Grind finer so the water extracts more flavour."},
			{Key: "brew_time_short", Question: "Does the water run through in well under two minutes?", Solution: "Pour more slowly or steep longer."},
		},
	},
	{
		Key:         "muddy",
		Description: "Coffee tastes silty, heavy or has sludge in the cup.",
		Causes: []entity.Cause{
			{Key: "grind_fine", Question: "Is your grind powdery, close to espresso?", Solution: "Use a coarser grind and a burr grinder for fewer fines."},
			{Key: "agitation_high", Question: "Are you stirring or swirling a lot during the brew?", Solution: "Stir once after the bloom and let the bed settle."},
		},
	},
	{
		Key:         "flat",
		Description: "Coffee tastes dull, stale or lifeless.",
		Causes: []entity.Cause{
			{Key: "beans_stale", Question: "Were your beans roasted more than a month ago?", Solution: "Buy fresher beans and store them airtight away from light."},
			{Key: "water_temp_low", Question: "Is your water well below 90°C?", Solution: "Heat your water to the recipe temperature."},
		},
	},
}

var starterTraining = []entity.TrainingExample{
	{Text: "my coffee is way too bitter", Problem: "bitter"},
	{Text: "it tastes burnt and harsh", Problem: "bitter"},
	{Text: "there is a harsh aftertaste", Problem: "bitter"},
	{Text: "my cup is really bitter and dry", Problem: "bitter"},
	{Text: "tastes like burnt toast", Problem: "bitter"},
	{Text: "it leaves my mouth dry", Problem: "bitter"},
	{Text: "my brew is sour", Problem: "sour"},
	{Text: "tastes like lemon juice in a bad way", Problem: "sour"},
	{Text: "it is too acidic and sharp", Problem: "sour"},
	{Text: "tastes salty and sour", Problem: "sour"},
	{Text: "my pour over is tangy and underdeveloped", Problem: "sour"},
	{Text: "it is watery and thin", Problem: "weak"},
	{Text: "my coffee has no body", Problem: "weak"},
	{Text: "tastes like brown water", Problem: "weak"},
	{Text: "it is too weak", Problem: "weak"},
	{Text: "the flavour is very diluted", Problem: "weak"},
	{Text: "there is sludge at the bottom of my cup", Problem: "muddy"},
	{Text: "it tastes gritty", Problem: "muddy"},
	{Text: "my french press is silty", Problem: "muddy"},
	{Text: "the cup feels muddy and heavy", Problem: "muddy"},
	{Text: "it tastes stale", Problem: "flat"},
	{Text: "my coffee is dull and boring", Problem: "flat"},
	{Text: "there is no flavour at all", Problem: "flat"},
	{Text: "tastes like cardboard", Problem: "flat"},
}
