package diet

import "github.com/omnihealth/guardian/internal/domain/patient"

// Canned plans served when no LLM is configured or the call fails. The texts
// are fixed so the demo stays stable offline.
var fallbackPlans = map[string]string{
	patient.ConditionDiabetesType1: "**Daily Diet Plan for Type 1 Diabetes**\n\n" +
		"*Breakfast:* Steel-cut oatmeal with berries and walnuts, 2 scrambled eggs\n" +
		"*Snack:* Greek yogurt with cinnamon\n" +
		"*Lunch:* Grilled chicken salad with olive oil dressing, quinoa\n" +
		"*Snack:* Celery with almond butter\n" +
		"*Dinner:* Baked salmon, roasted vegetables, brown rice\n\n" +
		"**Key Notes:** Monitor carbohydrate intake, balance with insulin dosing.\n\n" +
		"⚠️ Disclaimer: Consult your healthcare provider before making dietary changes.",
	patient.ConditionDiabetesType2: "**Daily Diet Plan for Type 2 Diabetes**\n\n" +
		"*Breakfast:* Veggie omelet with whole grain toast, avocado\n" +
		"*Snack:* Mixed nuts (1/4 cup)\n" +
		"*Lunch:* Turkey and vegetable soup, side salad\n" +
		"*Snack:* Apple slices with cheese\n" +
		"*Dinner:* Grilled lean beef, steamed broccoli, sweet potato\n\n" +
		"**Key Notes:** Focus on low glycemic index foods, portion control is essential.\n\n" +
		"⚠️ Disclaimer: Consult your healthcare provider before making dietary changes.",
	patient.ConditionHeart: "**Daily Diet Plan for Heart Health**\n\n" +
		"*Breakfast:* Overnight oats with flaxseed and berries\n" +
		"*Snack:* Handful of almonds\n" +
		"*Lunch:* Mediterranean salad with chickpeas, feta, olive oil\n" +
		"*Snack:* Carrot sticks with hummus\n" +
		"*Dinner:* Grilled salmon, asparagus, quinoa\n\n" +
		"**Key Notes:** Low sodium, heart-healthy fats, high fiber diet recommended.\n\n" +
		"⚠️ Disclaimer: Consult your healthcare provider before making dietary changes.",
}

// FallbackPlan returns the canned plan for a condition. Unknown conditions
// get the type 2 diabetes plan.
func FallbackPlan(condition string) string {
	if plan, ok := fallbackPlans[condition]; ok {
		return plan
	}
	return fallbackPlans[patient.ConditionDiabetesType2]
}
